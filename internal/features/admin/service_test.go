package admin

import (
	"encoding/base64"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"

	"ultimate-bot/internal/common"
	"ultimate-bot/internal/config"
)

// testHash строит валидный Argon2id-хеш в том же формате,
// что и scripts/generate_hash.go, но с лёгкими параметрами.
func testHash(password string) string {
	salt := []byte("0123456789abcdef")
	var (
		memory      uint32 = 1024
		iterations  uint32 = 1
		parallelism uint8  = 1
	)
	hash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, 32)
	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory, iterations, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash))
}

func TestIsAdminStaticList(t *testing.T) {
	svc := NewService(&config.Config{AdminIDs: []int64{42}})

	assert.True(t, svc.IsAdmin(42))
	assert.False(t, svc.IsAdmin(7))
}

func TestLoginDisabledWithoutHash(t *testing.T) {
	svc := NewService(&config.Config{})
	err := svc.Login(1, "whatever")
	assert.True(t, errors.Is(err, common.ErrLoginDisabled))
}

func TestLoginOpensSession(t *testing.T) {
	svc := NewService(&config.Config{AdminPasswordHash: testHash("s3cret")})

	assert.False(t, svc.IsAdmin(1))
	require.NoError(t, svc.Login(1, "s3cret"))
	assert.True(t, svc.IsAdmin(1))

	svc.Logout(1)
	assert.False(t, svc.IsAdmin(1))
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewService(&config.Config{AdminPasswordHash: testHash("s3cret")})

	err := svc.Login(1, "wrong")
	assert.True(t, errors.Is(err, common.ErrWrongPassword))
	assert.False(t, svc.IsAdmin(1))
}

func TestLoginLockoutAfterThreeAttempts(t *testing.T) {
	svc := NewService(&config.Config{AdminPasswordHash: testHash("s3cret")})

	for i := 0; i < 3; i++ {
		err := svc.Login(1, "wrong")
		assert.True(t, errors.Is(err, common.ErrWrongPassword), "попытка %d", i+1)
	}

	// Четвёртая попытка блокируется, даже с верным паролем
	err := svc.Login(1, "s3cret")
	assert.True(t, errors.Is(err, common.ErrTooManyAttempts))

	// Блокировка не задевает другого пользователя
	require.NoError(t, svc.Login(2, "s3cret"))
}

func TestVerifyArgon2idMalformedHash(t *testing.T) {
	assert.False(t, verifyArgon2id("pw", "not-a-hash"))
	assert.False(t, verifyArgon2id("pw", "$argon2id$v=19$m=1024,t=1,p=1$bad!salt$hash"))
}
