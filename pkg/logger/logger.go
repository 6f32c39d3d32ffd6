package logger

import (
	"context"
	"errors"
	"fmt"
	"fortstats/pkg/config"
	"io"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ErrNoLogFile is returned when uploading a logger that isn't backed by a file.
var ErrNoLogFile = errors.New("logger has no backing file")

// Reporter receives the diagnostics of failed lookups.
type Reporter interface {
	Errorf(format string, args ...any)
}

type discard struct{}

func (discard) Errorf(string, ...any) {}

// Discard drops every diagnostic.
var Discard Reporter = discard{}

// Logger writes leveled lines to an output and, optionally, to a temporary file.
// A nil *Logger is valid and drops every line, so it can be passed as a Reporter.
type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	logFile  *os.File
	filePath string
}

// New creates a logger writing to the given output.
// A nil output means standard output.
func New(out io.Writer) *Logger {
	if out == nil {
		out = os.Stdout
	}
	return &Logger{out: out}
}

// NewFileLogger creates a logger that also keeps every line on a temporary file,
// so the run can be shipped with UploadToS3Bucket.
func NewFileLogger(out io.Writer) (*Logger, error) {
	f, err := os.CreateTemp("", "log-*.log")
	if err != nil {
		return nil, err
	}

	l := New(out)
	l.logFile = f
	l.filePath = f.Name()
	return l, nil
}

// Log a simple info.
func (l *Logger) Infof(format string, args ...any) {
	l.write("[INFO]", format, args...)
}

// Log a error.
func (l *Logger) Errorf(format string, args ...any) {
	l.write("[ERROR]", format, args...)
}

// Write something to the logger.
func (l *Logger) write(infoType string, format string, args ...any) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("%-8s %s %s\n", infoType, timestamp, fmt.Sprintf(format, args...))

	io.WriteString(l.out, line)
	if l.logFile != nil {
		l.logFile.WriteString(line)
	}
}

// Clean the file contents.
func (l *Logger) CleanFile() {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logFile == nil {
		return
	}
	l.logFile.Truncate(0)
	l.logFile.Seek(0, 0)
}

// Close removes the backing file, if any.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logFile == nil {
		return nil
	}
	l.logFile.Close()
	err := os.Remove(l.filePath)
	l.logFile = nil
	return err
}

// Upload the log to a s3 bucket.
func (l *Logger) UploadToS3Bucket(ctx context.Context, bucket config.BucketConfiguration, objectKey string) error {
	if l == nil {
		return ErrNoLogFile
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logFile == nil {
		return ErrNoLogFile
	}

	if _, err := l.logFile.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to rewind file: %w", err)
	}

	cfg := aws.Config{
		Region: bucket.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				bucket.AccessKey,
				bucket.AccessSecret,
				"",
			),
		),
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if bucket.Endpoint != "" {
			o.BaseEndpoint = aws.String(bucket.Endpoint)
		}
		o.UsePathStyle = true
	})

	_, err := s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket.LogBucket),
		Key:    aws.String(objectKey),
		Body:   l.logFile,
		ACL:    types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to S3 bucket: %w", objectKey, err)
	}

	// Clean the file after sending.
	l.logFile.Truncate(0)
	l.logFile.Seek(0, 0)

	return nil
}
