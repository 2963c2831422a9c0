package models

import (
	"context"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

type User struct {
	tableName struct{}  `pg:"user"`
	UserID    uuid.UUID `pg:"user_id,pk,type:uuid" json:"id"`
	Username  string    `pg:"username,notnull" json:"username"`
	Email     string    `pg:"email,notnull" json:"email"`
	Password  string    `pg:"password,notnull,use_zero" json:"-"`
	Avatar    string    `pg:"avatar,notnull,use_zero" json:"avatar"`
	CreatedAt time.Time `pg:"created_at,notnull,default:now()" json:"createdAt"`
	UpdatedAt time.Time `pg:"updated_at,notnull,default:now()" json:"updatedAt"`
}

func GetUserByID(ctx context.Context, db pg.DBI, id uuid.UUID) (*User, error) {
	u := &User{}
	err := db.Model(u).
		Context(ctx).
		Where("user_id = ?", id).
		Limit(1).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch user")
	}
	return u, nil
}

func CreateUser(ctx context.Context, db pg.DBI, u *User) error {
	if uuid.Equal(u.UserID, uuid.Nil) {
		u.UserID = uuid.NewV4()
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	_, err := db.Model(u).
		Context(ctx).
		Insert()
	if err != nil {
		return errors.Wrap(err, "failed to create user")
	}
	return nil
}

// UpdateUserProfile stores username and avatar of u.
func UpdateUserProfile(ctx context.Context, db pg.DBI, u *User) error {
	u.UpdatedAt = time.Now()
	_, err := db.Model(u).
		Context(ctx).
		WherePK().
		Column("username", "avatar", "updated_at").
		Update()
	if err != nil {
		return errors.Wrap(err, "failed to update user profile")
	}
	return nil
}

// DeleteUser removes the user. Playlists, saved videos, comments and reactions
// go away through ON DELETE CASCADE.
func DeleteUser(ctx context.Context, db pg.DBI, id uuid.UUID) (bool, error) {
	res, err := db.Model((*User)(nil)).
		Context(ctx).
		Where("user_id = ?", id).
		Delete()
	if err != nil {
		return false, errors.Wrap(err, "failed to delete user")
	}
	return res.RowsAffected() > 0, nil
}

func GetUserByEmail(ctx context.Context, db pg.DBI, email string) (*User, error) {
	u := &User{}
	err := db.Model(u).
		Context(ctx).
		Where("email = ?", email).
		Limit(1).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch user by email")
	}
	return u, nil
}
