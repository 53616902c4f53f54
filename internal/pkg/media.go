package pkg

import (
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// 库里存的媒体引用两种形态：对象存储 /media/<key>，或本地 /static/uploads/...
const ObjectPathPrefix = "/media/"

// ObjectPath 对象 key -> 入库引用
func ObjectPath(key string) string {
	return ObjectPathPrefix + strings.TrimPrefix(key, "/")
}

// KeyFromPath 入库引用 -> 对象 key，本地路径返回 false
func KeyFromPath(p string) (string, bool) {
	if strings.HasPrefix(p, ObjectPathPrefix) {
		return p[len(ObjectPathPrefix):], true
	}
	return "", false
}

type MediaConfig struct {
	Endpoint        string // R2 等 S3 兼容端点，留空走 AWS
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	SignedURLTTLSec int
	LocalDir        string
}

func (c MediaConfig) ObjectStoreEnabled() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != "" && c.Bucket != ""
}

// MediaResolver 媒体引用解析：取可访问地址、落盘上传、尽力而为的删除。
// Delete 永不向调用方抛错——对象清理只是顺手收尾，不属于任何事务保证
type MediaResolver interface {
	ResolveURL(storedPath string) (string, error)
	Upload(key, contentType string, body io.Reader) (storedPath string, err error)
	Delete(storedPath string)
}

// S3MediaResolver 对象存储实现，R2/S3 通用
type S3MediaResolver struct {
	svc      *s3.S3
	uploader *s3manager.Uploader
	bucket   string
	expires  time.Duration
}

func NewS3MediaResolver(cfg MediaConfig) (*S3MediaResolver, error) {
	awsCfg := &aws.Config{
		Region:      aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, err
	}
	ttl := time.Duration(cfg.SignedURLTTLSec) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &S3MediaResolver{
		svc:      s3.New(sess),
		uploader: s3manager.NewUploader(sess),
		bucket:   cfg.Bucket,
		expires:  ttl,
	}, nil
}

// ResolveURL 对象 key 签发限时 URL，本地路径原样返回
func (r *S3MediaResolver) ResolveURL(storedPath string) (string, error) {
	key, ok := KeyFromPath(storedPath)
	if !ok {
		return storedPath, nil
	}
	req, _ := r.svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	return req.Presign(r.expires)
}

func (r *S3MediaResolver) Upload(key, contentType string, body io.Reader) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := r.uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return ObjectPath(key), nil
}

// Delete 失败只记日志，不影响请求
func (r *S3MediaResolver) Delete(storedPath string) {
	key, ok := KeyFromPath(storedPath)
	if !ok || key == "" {
		return
	}
	_, err := r.svc.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		Log.Warnf("media delete failed key=%s err=%v", key, err)
	}
}

// LocalMediaResolver 未配置对象存储时的本地落盘实现
type LocalMediaResolver struct {
	Dir string
}

func NewLocalMediaResolver(dir string) (*LocalMediaResolver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalMediaResolver{Dir: dir}, nil
}

func (r *LocalMediaResolver) ResolveURL(storedPath string) (string, error) {
	return storedPath, nil
}

func (r *LocalMediaResolver) Upload(key, contentType string, body io.Reader) (string, error) {
	name := path.Base(key)
	dst := filepath.Join(r.Dir, name)
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, body); err != nil {
		return "", err
	}
	return "/" + filepath.ToSlash(dst), nil
}

func (r *LocalMediaResolver) Delete(storedPath string) {
	p := strings.TrimPrefix(storedPath, "/")
	if !strings.HasPrefix(p, filepath.ToSlash(r.Dir)) {
		return
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		Log.Warnf("media delete failed path=%s err=%v", p, err)
	}
}

// ContentTypeByName 按扩展名猜 Content-Type
func ContentTypeByName(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// 帖子允许图片和视频，头像只允许图片
var postExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
	".mp4": true, ".mov": true,
}

var avatarExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
}

func AllowedPostFile(name string) bool {
	return postExts[strings.ToLower(path.Ext(name))]
}

func AllowedAvatarFile(name string) bool {
	return avatarExts[strings.ToLower(path.Ext(name))]
}
