// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"account_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// tokenByteLength はベアラートークンの乱数バイト数を定義します。
	// 32バイト（256ビット）を16進エンコードし64文字のトークンになります。
	tokenByteLength = 32

	// dummyDigest はユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュです。
	// Hasher.Verifyが常に呼ばれることを保証します。
	dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// Hasher はパスワードのハッシュ化と検証のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/password）ではなくコンシューマー（usecase）が定義します。
type Hasher interface {
	// Hash は平文パスワードからソルト付きダイジェストを生成します。
	Hash(plaintext string) (string, error)

	// Verify は平文パスワードとダイジェストを照合します。
	// ダイジェストが不正な場合もfalseを返します（フェイルクローズド）。
	Verify(plaintext, digest string) bool
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users  UserRepository
	tokens TokenRepository
	hasher Hasher
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, tokens TokenRepository, hasher Hasher) *authUsecase {
	return &authUsecase{
		users:  users,
		tokens: tokens,
		hasher: hasher,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters long", ErrWeakPassword, minPasswordLength)
	}
	return nil
}

// generateToken は暗号論的乱数からベアラートークンを生成します。
// 平文トークンと、その保存用SHA-256ダイジェストを返します。
func generateToken() (plaintext, digest string, err error) {
	raw := make([]byte, tokenByteLength)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("failed to generate token: %w", err)
	}
	plaintext = hex.EncodeToString(raw)
	return plaintext, tokenDigest(plaintext), nil
}

// tokenDigest は平文トークンの保存用SHA-256ダイジェスト（16進）を返します。
func tokenDigest(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// issue は指定ユーザーへ新しいベアラートークンを発行し、平文トークンを返します。
// 平文はここで一度だけ返却され、以後再構築できません。
func (u *authUsecase) issue(ctx context.Context, userID uint) (string, error) {
	plaintext, digest, err := generateToken()
	if err != nil {
		return "", err
	}
	token := &entity.Token{
		ID:       digest,
		UserID:   userID,
		IssuedAt: time.Now(),
	}
	if err := u.tokens.Create(ctx, token); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	return plaintext, nil
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録し、トークンを発行します。
// 登録されるユーザーは常に非管理者です。
func (u *authUsecase) Register(ctx context.Context, name, email, password string) (*entity.User, string, error) {
	// パスワード強度を検証
	if err := validatePassword(password); err != nil {
		return nil, "", err
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{Name: name, Email: email, Password: hashed}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := u.issue(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login はユーザーを認証し、成功時に新しいベアラートークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもハッシュ比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	// メールアドレスでユーザーを検索
	user, err := u.users.FindByEmail(ctx, email)

	digest := dummyDigest
	if err == nil {
		digest = user.Password
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	ok := u.hasher.Verify(password, digest)

	// ユーザー未検出またはパスワード不一致の場合、同一のエラーを返す（ユーザー列挙攻撃の防止）
	if err != nil || !ok {
		return "", ErrInvalidCredentials
	}

	return u.issue(ctx, user.ID)
}

// Logout は指定されたベアラートークンを失効させます。
// 未知または既に失効済みのトークンにはErrInvalidTokenを返します。
func (u *authUsecase) Logout(ctx context.Context, token string) error {
	digest := tokenDigest(token)
	if _, err := u.tokens.FindByID(ctx, digest); err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	return u.tokens.Delete(ctx, digest)
}

// AuthenticateToken はベアラートークンを解決し、認証済みアイデンティティを返します。
// 管理者フラグはトークン発行時点ではなく、リクエスト時点の値をストアから再取得します。
func (u *authUsecase) AuthenticateToken(ctx context.Context, token string) (*entity.Identity, error) {
	rec, err := u.tokens.FindByID(ctx, tokenDigest(token))
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	// 失効済み管理者の権限が残らないよう、ユーザーを都度取得する
	user, err := u.users.FindByID(ctx, rec.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	return &entity.Identity{UserID: user.ID, IsAdmin: user.IsAdmin}, nil
}
