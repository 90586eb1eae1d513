package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/matthiasBT/library/internal/infra/logging"
	"github.com/matthiasBT/library/internal/server/entities"
)

type SQLUserRepo struct {
	logger  logging.ILogger
	storage entities.Storage
	crypto  entities.ICryptoProvider
}

func NewSQLUserRepo(logger logging.ILogger, storage entities.Storage, crypto entities.ICryptoProvider) *SQLUserRepo {
	return &SQLUserRepo{
		logger:  logger,
		storage: storage,
		crypto:  crypto,
	}
}

// CreateUser inserts unconditionally. Usernames are not unique.
func (u *SQLUserRepo) CreateUser(ctx context.Context, request *entities.UserAuthRequest) (int64, error) {
	u.logger.Infof("Creating user: %s", request.Username)
	stored, err := u.crypto.HashPassword(request.Password)
	if err != nil {
		return 0, err
	}
	query := "insert into users(username, password) values (?, ?) returning id"
	id, err := u.storage.InsertContext(ctx, query, request.Username, stored)
	if err != nil {
		u.logger.Errorf("Failed to create a user record: %s", err.Error())
		return 0, err
	}
	u.logger.Infof("User created: %d", id)
	return id, nil
}

func (u *SQLUserRepo) FindUser(ctx context.Context, request *entities.UserAuthRequest) (*entities.User, error) {
	u.logger.Infof("Searching for user: %s", request.Username)
	if !u.crypto.Deterministic() {
		return u.findHashed(ctx, request)
	}
	var user entities.User
	query := "select id, username, password from users where username = ? and password = ?"
	if err := u.storage.GetContext(ctx, &user, query, request.Username, request.Password); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			u.logger.Infoln("User not found")
			return nil, nil
		}
		u.logger.Errorf("Failed to find the user: %s", err.Error())
		return nil, err
	}
	u.logger.Infoln("User found")
	return &user, nil
}

func (u *SQLUserRepo) findHashed(ctx context.Context, request *entities.UserAuthRequest) (*entities.User, error) {
	var users []entities.User
	query := "select id, username, password from users where username = ? order by id"
	if err := u.storage.SelectContext(ctx, &users, query, request.Username); err != nil {
		u.logger.Errorf("Failed to find the user: %s", err.Error())
		return nil, err
	}
	for i := range users {
		if u.crypto.CheckPassword(request.Password, users[i].Password) == nil {
			u.logger.Infoln("User found")
			return &users[i], nil
		}
	}
	u.logger.Infoln("User not found")
	return nil, nil
}
