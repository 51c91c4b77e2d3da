package dto

type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"` //密碼明文
}

// LoginResponse expiresIn 單位為秒
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

type RegisterDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserDTO 表示用戶資訊
type UserDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
