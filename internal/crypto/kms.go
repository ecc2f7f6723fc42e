package crypto

import (
	"context"
	"encoding/base64"

	gcpkms "cloud.google.com/go/kms/apiv1"
	"cloud.google.com/go/kms/apiv1/kmspb"

	"github.com/GregMSThompson/family-savings/internal/errs"
)

type kms struct {
	client  *gcpkms.KeyManagementClient
	keyName string
}

func NewKMS(client *gcpkms.KeyManagementClient, keyName string) *kms {
	return &kms{client: client, keyName: keyName}
}

// Encrypt encrypts plaintext with the configured key and returns base64 text.
func (k *kms) Encrypt(ctx context.Context, plaintext string) (string, error) {
	resp, err := k.client.Encrypt(ctx, &kmspb.EncryptRequest{
		Name:      k.keyName,
		Plaintext: []byte(plaintext),
	})
	if err != nil {
		return "", errs.NewEncryptionError(err)
	}
	return base64.StdEncoding.EncodeToString(resp.Ciphertext), nil
}

// Decrypt reverses Encrypt.
func (k *kms) Decrypt(ctx context.Context, ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", errs.NewEncryptionError(err)
	}
	resp, err := k.client.Decrypt(ctx, &kmspb.DecryptRequest{
		Name:       k.keyName,
		Ciphertext: raw,
	})
	if err != nil {
		return "", errs.NewEncryptionError(err)
	}
	return string(resp.Plaintext), nil
}

// Plain stores values as given. It is used when no KMS key is configured,
// e.g. against the Firestore emulator.
type Plain struct{}

func (Plain) Encrypt(_ context.Context, plaintext string) (string, error) { return plaintext, nil }
func (Plain) Decrypt(_ context.Context, ciphertext string) (string, error) { return ciphertext, nil }

// Cipher is implemented by the KMS helper and Plain.
type Cipher interface {
	Encrypt(ctx context.Context, plaintext string) (string, error)
	Decrypt(ctx context.Context, ciphertext string) (string, error)
}

// New returns a KMS-backed cipher, or Plain when client is nil.
func New(client *gcpkms.KeyManagementClient, keyName string) Cipher {
	if client == nil {
		return Plain{}
	}
	return NewKMS(client, keyName)
}
