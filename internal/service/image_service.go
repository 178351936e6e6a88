package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/paydii_api/internal/config"
	"github.com/GTDGit/paydii_api/internal/models"
	"github.com/GTDGit/paydii_api/internal/utils"
)

// MaxImageSize bounds product image uploads.
const MaxImageSize = 5 << 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ImageModerator rejects images that are not fit to be listed.
type ImageModerator interface {
	Moderate(ctx context.Context, data []byte) ([]string, error)
}

// RekognitionModerator flags images using AWS Rekognition moderation labels.
type RekognitionModerator struct {
	client        *rekognition.Client
	minConfidence float32
}

// NewRekognitionModerator creates a moderator for the configured region.
func NewRekognitionModerator(ctx context.Context, cfg *config.AWSConfig) (*RekognitionModerator, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.RekognitionRegion))
	if err != nil {
		return nil, fmt.Errorf("load AWS SDK config: %w", err)
	}
	return &RekognitionModerator{
		client:        rekognition.NewFromConfig(awsCfg),
		minConfidence: float32(cfg.MinConfidence),
	}, nil
}

// Moderate returns the names of moderation labels detected above the
// configured confidence. An empty result means the image is acceptable.
func (m *RekognitionModerator) Moderate(ctx context.Context, data []byte) ([]string, error) {
	out, err := m.client.DetectModerationLabels(ctx, &rekognition.DetectModerationLabelsInput{
		Image:         &types.Image{Bytes: data},
		MinConfidence: aws.Float32(m.minConfidence),
	})
	if err != nil {
		return nil, fmt.Errorf("detect moderation labels: %w", err)
	}
	labels := make([]string, 0, len(out.ModerationLabels))
	for _, l := range out.ModerationLabels {
		labels = append(labels, aws.ToString(l.Name))
	}
	return labels, nil
}

// ImageService stores product images in S3 using AWS Signature V4.
type ImageService struct {
	bucket      string
	region      string
	credentials aws.Credentials
	signer      *v4.Signer
	moderator   ImageModerator
	httpClient  *http.Client
	nowFn       func() time.Time
}

// NewImageService creates a new image service. moderator may be nil.
func NewImageService(cfg *config.S3Config, moderator ImageModerator) *ImageService {
	return &ImageService{
		bucket: cfg.Bucket,
		region: cfg.Region,
		credentials: aws.Credentials{
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
			Source:          "paydii",
		},
		signer:     v4.NewSigner(),
		moderator:  moderator,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		nowFn:      time.Now,
	}
}

// Upload validates, moderates and stores an image for seller and returns its
// public URL, suitable for a product's image field.
func (s *ImageService) Upload(ctx context.Context, seller models.AccountID, data []byte, contentType string) (string, error) {
	if err := requireCaller(seller); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", utils.NewError(utils.KindInvalidArgument, "image is empty")
	}
	if len(data) > MaxImageSize {
		return "", utils.NewError(utils.KindInvalidArgument, "image exceeds %d bytes", MaxImageSize)
	}
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", utils.NewError(utils.KindInvalidArgument, "unsupported image type %q", contentType)
	}

	if s.moderator != nil {
		labels, err := s.moderator.Moderate(ctx, data)
		if err != nil {
			return "", err
		}
		if len(labels) > 0 {
			log.Warn().Str("seller", seller.String()).Strs("labels", labels).Msg("Image rejected by moderation")
			return "", utils.NewError(utils.KindInvalidArgument, "image rejected: %s", strings.Join(labels, ", "))
		}
	}

	key := fmt.Sprintf("products/%s/%s%s", seller, uuid.NewString(), ext)
	return s.uploadFile(ctx, key, data, contentType)
}

// uploadFile uploads a file to S3 with a SigV4-signed PUT.
func (s *ImageService) uploadFile(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if !s.credentials.HasKeys() {
		log.Warn().Str("key", key).Msg("S3 credentials not configured - skipping upload")
		return s.GetObjectURL(key), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.GetObjectURL(key), bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	payloadHash := sha256Hex(data)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Amz-Content-Sha256", payloadHash)
	if err := s.signer.SignHTTP(ctx, s.credentials, req, payloadHash, "s3", s.region, s.nowFn().UTC()); err != nil {
		return "", fmt.Errorf("failed to sign request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to upload to S3")
		return "", fmt.Errorf("failed to upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		log.Error().
			Str("key", key).
			Int("status", resp.StatusCode).
			Str("response", string(body)).
			Msg("S3 upload failed")
		return "", fmt.Errorf("S3 upload failed: %s", string(body))
	}

	log.Info().Str("key", key).Msg("Successfully uploaded to S3")
	return s.GetObjectURL(key), nil
}

func (s *ImageService) host() string {
	return fmt.Sprintf("%s.s3.%s.amazonaws.com", s.bucket, s.region)
}

// GetObjectURL returns the URL for an S3 object
func (s *ImageService) GetObjectURL(key string) string {
	return fmt.Sprintf("https://%s/%s", s.host(), key)
}

func sha256Hex(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
