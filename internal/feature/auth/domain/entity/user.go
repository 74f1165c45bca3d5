// Package entity はauthフィーチャーのドメインエンティティを定義します。
package entity

import "time"

// User はシステムに登録されたユーザーを表します。
type User struct {
	// ID はユーザーの一意な識別子です。
	ID uint `gorm:"primaryKey"`

	// Email は認証に使用するメールアドレスです。全ユーザー間で一意です。
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Username は表示用のユーザー名です。
	Username string `gorm:"size:150;not null"`

	// Password はハッシュ化済みのパスワードです。平文は保存しません。
	Password string `gorm:"size:255;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
