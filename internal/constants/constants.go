package constants

import "time"

const (
	//搜尋
	DefaultSearchLimit int = 10
	MaxSearchLimit     int = 100
)

// for api auth
type ContextKey string

const (
	AuthorizationHeaderKey  ContextKey = "authorization"
	AuthorizationTypeBearer ContextKey = "bearer"
	AuthorizationPayloadKey ContextKey = "authorization_payload"
)

const (
	DefaultTokenDurationMinutes int = 60
)

type ENV string

const (
	Debug ENV = "debug"
	Dev   ENV = "development"
	Stag  ENV = "staging"
	Prod  ENV = "production"
)

type RequestID string

const (
	RequestIDKey RequestID = "request_id"
)

// 照片上傳
const (
	MaxPhotoSize      int64 = 5 * 1024 * 1024
	DefaultUploadDir        = "Uploads"
	PhotoFormField          = "file"
	multipartOverhead int64 = 1024 * 1024
	// MaxUploadBody 限制整個 multipart body, 留一點空間給 boundary 與 header
	MaxUploadBody = MaxPhotoSize + multipartOverhead
)

// AllowedPhotoExtensions 可接受的照片副檔名 (小寫)
var AllowedPhotoExtensions = []string{".jpg", ".jpeg", ".png"}

// 欄位長度限制
const (
	MinUsernameLength    = 3
	MaxUsernameLength    = 20
	MinPasswordLength    = 6
	MaxPasswordLength    = 72 // bcrypt 上限
	MaxEmailLength       = 30
	MaxContactNameLength = 100
	MaxAddressLength     = 255
)

const (
	ShutdownTimeout = 30 * time.Second
	StorageTimeout  = 10 * time.Second
)
