package logger

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaWriter zerolog 的 io.Writer, 每一行 log 送出一則 message
type KafkaWriter struct {
	w       messageWriter
	logId   atomic.Int64
	timeout time.Duration
}

func NewKafkaWriter(brokers []string, topic string) (*KafkaWriter, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are empty")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka topic is empty")
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		// 設置較短的超時時間以快速發現問題
		WriteTimeout: 5 * time.Second,
		MaxAttempts:  3,
		// 不阻塞 request
		Async: true,
	}
	return newKafkaWriter(w), nil
}

func newKafkaWriter(w messageWriter) *KafkaWriter {
	return &KafkaWriter{
		w:       w,
		timeout: 5 * time.Second,
	}
}

func (kw *KafkaWriter) Write(p []byte) (n int, err error) {
	if kw == nil || kw.w == nil {
		return 0, fmt.Errorf("kafka writer is not init")
	}

	id := kw.logId.Add(1)
	kbuf := make([]byte, 8)
	binary.BigEndian.PutUint64(kbuf, uint64(id))

	// zerolog 會重用 p
	value := make([]byte, len(p))
	copy(value, p)

	ctx, cancel := context.WithTimeout(context.Background(), kw.timeout)
	defer cancel()
	if err := kw.w.WriteMessages(ctx, kafka.Message{
		Key:   kbuf,
		Value: value,
	}); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (kw *KafkaWriter) Close() error {
	return kw.w.Close()
}
