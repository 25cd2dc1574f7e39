package stego

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/binary"
	"encoding/pem"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/pbkdf2"
)

// Encrypt/Decrypt and EncryptRSA/DecryptRSA are a caller-side wrapping step
// a CLI applies to a payload before stego.Encode (or after stego.Decode);
// the core itself never encrypts anything, per its non-goal on
// cryptographic confidentiality.

const (
	passphraseSaltSize = 16
	passphraseKDFIters = 200000
	aesKeySize         = 32
)

// deriveKey stretches a passphrase into an AES-256 key with PBKDF2-HMAC-SHA256
// under a per-message salt, rather than hashing the passphrase alone -- two
// payloads encrypted under the same passphrase get unrelated keys.
func deriveKey(passphrase string, salt []byte) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, passphraseKDFIters, aesKeySize, sha256.New)
}

// Encrypt seals data under a passphrase-derived AES-256-GCM key, prefixing
// the ciphertext with the random salt the key was derived from.
func Encrypt(data []byte, passphrase string) ([]byte, error) {
	salt := make([]byte, passphraseSaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}

	ciphertext, err := encryptWithKey(data, deriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}
	return append(salt, ciphertext...), nil
}

func encryptWithKey(data []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("encryption error: failed to create GCM")
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	ciphertext := gcm.Seal(nonce, nonce, data, nil)
	return ciphertext, nil
}

// Decrypt reverses Encrypt under the same passphrase, reading the salt back
// off the front of data before deriving the key.
func Decrypt(data []byte, passphrase string) ([]byte, error) {
	if len(data) < passphraseSaltSize {
		return nil, fmt.Errorf("ciphertext too short")
	}
	salt, body := data[:passphraseSaltSize], data[passphraseSaltSize:]
	return decryptWithKey(body, deriveKey(passphrase, salt))
}

func decryptWithKey(data []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, err
	}
	return plaintext, nil
}

// GenerateRSAKeys writes a fresh RSA keypair as private.pem/public.pem under
// outDir, for hybrid RSA+AES payload encryption.
func GenerateRSAKeys(bits int, outDir string) error {
	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return err
	}

	if _, err := os.Stat(outDir); os.IsNotExist(err) {
		return fmt.Errorf("output directory does not exist: %s", outDir)
	}

	privFile, err := os.Create(filepath.Join(outDir, "private.pem"))
	if err != nil {
		return err
	}
	defer privFile.Close()

	privBytes := x509.MarshalPKCS1PrivateKey(privateKey)
	privBlock := &pem.Block{Type: "RSA PRIVATE KEY", Bytes: privBytes}
	if err := pem.Encode(privFile, privBlock); err != nil {
		return err
	}

	publicKey := &privateKey.PublicKey
	pubFile, err := os.Create(filepath.Join(outDir, "public.pem"))
	if err != nil {
		return err
	}
	defer pubFile.Close()

	pubBytes, err := x509.MarshalPKIXPublicKey(publicKey)
	if err != nil {
		return err
	}

	pubBlock := &pem.Block{Type: "PUBLIC KEY", Bytes: pubBytes}
	return pem.Encode(pubFile, pubBlock)
}

// EncryptRSA hybrid-encrypts data: a random AES-256 key encrypts the
// payload, and the AES key itself is sealed with RSA-OAEP under the
// recipient's public key.
func EncryptRSA(data []byte, pubKeyPath string) ([]byte, error) {
	pubKeyBytes, err := os.ReadFile(pubKeyPath)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(pubKeyBytes)
	if block == nil {
		return nil, fmt.Errorf("failed to parse PEM block containing the public key")
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("key is not of type RSA")
	}

	aesKey := make([]byte, 32)
	if _, err := rand.Read(aesKey); err != nil {
		return nil, err
	}

	encryptedKey, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, rsaPub, aesKey, nil)
	if err != nil {
		return nil, err
	}

	encryptedData, err := encryptWithKey(data, aesKey)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, 4+len(encryptedKey)+len(encryptedData))
	binary.BigEndian.PutUint32(payload[0:4], uint32(len(encryptedKey)))
	copy(payload[4:], encryptedKey)
	copy(payload[4+len(encryptedKey):], encryptedData)

	return payload, nil
}

// DecryptRSA reverses EncryptRSA under the matching private key.
func DecryptRSA(data []byte, privKeyPath string) (plaintext []byte, err error) {
	privKeyBytes, err := os.ReadFile(privKeyPath)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(privKeyBytes)
	if block == nil {
		return nil, fmt.Errorf("failed to parse PEM block containing the private key")
	}
	priv, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, err
	}

	if len(data) < 4 {
		return nil, fmt.Errorf("invalid data: too short")
	}
	keyLen := binary.BigEndian.Uint32(data[0:4])
	if uint32(len(data)) < 4+keyLen {
		return nil, fmt.Errorf("invalid data: malformed key length")
	}

	encryptedKey := data[4 : 4+keyLen]
	encryptedData := data[4+keyLen:]

	aesKey, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, priv, encryptedKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt AES key: %v", err)
	}

	plaintext, err = decryptWithKey(encryptedData, aesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt data: %v", err)
	}
	return plaintext, nil
}
