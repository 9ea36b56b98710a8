package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/phonesaver/phonesaver/internal/dbx"
	sc "github.com/phonesaver/phonesaver/internal/server/config"
	"github.com/phonesaver/phonesaver/internal/server/models"
	"github.com/phonesaver/phonesaver/internal/server/repositories/contacts"
	"github.com/phonesaver/phonesaver/internal/server/repositories/repomanager"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}
	getObject = func(c *s3.Client, ctx context.Context, in *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
		return c.GetObject(ctx, in)
	}
)

// snapshotContact is the wire form of one record inside a backup object.
// Only ciphertext leaves the database; there is no plaintext phone field.
type snapshotContact struct {
	Name            string     `json:"name"`
	PhoneCipher     string     `json:"phone_cipher"`
	Tags            []string   `json:"tags,omitempty"`
	LastInteraction *time.Time `json:"last_interaction,omitempty"`
	Birthday        string     `json:"birthday,omitempty"`
	Frequency       string     `json:"frequency"`
	PreferredTime   string     `json:"preferred_time,omitempty"`
	Notes           string     `json:"notes,omitempty"`
}

type BackupService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewBackupService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config) *BackupService {
	return &BackupService{
		db:          db,
		repomanager: repomanager,
		config:      config,
	}
}

func backupStorageKey(userID int64) string {
	return fmt.Sprintf("users/%d/%d-%v.json", userID, time.Now().Unix(), uuid.New())
}

func (s *BackupService) getS3Client() (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// Backup snapshots all of the user's records to object storage and records
// the storage key, which Restore later resolves as the newest snapshot.
func (s *BackupService) Backup(ctx context.Context, userID int64) (string, error) {

	list, err := s.repomanager.Contacts(s.db).List(ctx, userID, contacts.Filter{})
	if err != nil {
		return "", fmt.Errorf("error listing contacts: %w", err)
	}

	snapshot := make([]snapshotContact, 0, len(list))
	for _, c := range list {
		snapshot = append(snapshot, snapshotContact{
			Name:            c.Name,
			PhoneCipher:     c.PhoneCipher,
			Tags:            c.Tags,
			LastInteraction: c.LastInteraction,
			Birthday:        c.Birthday,
			Frequency:       c.Frequency,
			PreferredTime:   c.PreferredTime,
			Notes:           c.Notes,
		})
	}

	body, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("error encoding snapshot: %w", err)
	}

	client, err := s.getS3Client()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	key := backupStorageKey(userID)

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading snapshot: %w", err)
	}

	if _, err := s.repomanager.Backups(s.db).Create(ctx, userID, key); err != nil {
		return "", fmt.Errorf("error recording snapshot: %w", err)
	}

	return key, nil
}

// Restore replaces the user's records with the newest snapshot. The swap is
// one transaction: an interrupted restore leaves the previous rows intact.
func (s *BackupService) Restore(ctx context.Context, userID int64) (int, error) {

	latest, err := s.repomanager.Backups(s.db).Latest(ctx, userID)
	if err != nil {
		return 0, err
	}

	client, err := s.getS3Client()
	if err != nil {
		return 0, err
	}

	bucket := s.config.S3Bucket
	out, err := getObject(client, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &latest.StorageKey,
	})
	if err != nil {
		return 0, fmt.Errorf("error downloading snapshot: %w", err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return 0, fmt.Errorf("error reading snapshot: %w", err)
	}

	var snapshot []snapshotContact
	if err := json.Unmarshal(body, &snapshot); err != nil {
		return 0, fmt.Errorf("error decoding snapshot: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Contacts(tx)

		if err := repo.DeleteAllForUser(ctx, userID); err != nil {
			return err
		}

		for _, item := range snapshot {
			c := &models.Contact{
				UserID:          userID,
				Name:            item.Name,
				PhoneCipher:     item.PhoneCipher,
				Tags:            item.Tags,
				LastInteraction: item.LastInteraction,
				Birthday:        item.Birthday,
				Frequency:       item.Frequency,
				PreferredTime:   item.PreferredTime,
				Notes:           item.Notes,
			}
			if _, err := repo.Create(ctx, c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("error restoring contacts: %w", err)
	}

	return len(snapshot), nil
}
