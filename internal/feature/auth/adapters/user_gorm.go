// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"account_backend/internal/feature/auth/domain/entity"
	"account_backend/internal/feature/auth/usecase"
	platformdb "account_backend/internal/platform/db"
)

// userGorm はUserRepositoryインターフェースのGORM実装です。
// 本番ではPostgreSQL、テストではインメモリSQLiteに接続します。
type userGorm struct {
	db *gorm.DB
}

// userGormがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm は指定されたgorm.DB接続でuserGormの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create はユーザーをデータベースに追加します。
// 同じメールアドレスのユーザーが既に存在する場合、usecase.ErrEmailAlreadyExistsを返します。
// 一意性はアプリケーション側の事前チェックではなく、書き込み時のDB制約で保証されます。
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if platformdb.IsDuplicateKey(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID はIDでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
