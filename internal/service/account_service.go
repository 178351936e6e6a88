package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/GTDGit/paydii_api/internal/models"
	"github.com/GTDGit/paydii_api/internal/repository"
	"github.com/GTDGit/paydii_api/internal/utils"
)

const minPasswordLength = 8

// AccountService registers marketplace accounts and issues bearer tokens
// whose subject is the caller identity used by every mutating operation.
type AccountService struct {
	store       repository.Store
	accountRepo *repository.AccountRepository
	seq         *Sequencer
	jwtSecret   string
	jwtTTL      time.Duration
}

// NewAccountService constructs an AccountService issuing tokens valid for jwtTTL.
func NewAccountService(store repository.Store, accountRepo *repository.AccountRepository, seq *Sequencer, jwtSecret string, jwtTTL time.Duration) *AccountService {
	return &AccountService{
		store:       store,
		accountRepo: accountRepo,
		seq:         seq,
		jwtSecret:   jwtSecret,
		jwtTTL:      jwtTTL,
	}
}

// Register creates an account with a bcrypt-hashed password. The id must be
// unused.
func (s *AccountService) Register(ctx context.Context, id models.AccountID, password string) (*models.Account, error) {
	if id.IsZero() {
		return nil, utils.NewError(utils.KindInvalidArgument, "account id required")
	}
	if len(password) < minPasswordLength {
		return nil, utils.NewError(utils.KindInvalidArgument, "password must be at least %d characters", minPasswordLength)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &models.Account{
		ID:           id,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now().UTC(),
	}

	err = s.seq.Do(ctx, func(ctx context.Context) error {
		exists, err := s.accountRepo.Exists(ctx, id)
		if err != nil {
			return fmt.Errorf("lookup account: %w", err)
		}
		if exists {
			return utils.NewError(utils.KindAlreadyExists, "account %s already exists", id)
		}
		b := repository.NewBatch(s.store)
		if err := s.accountRepo.Create(b, account); err != nil {
			return fmt.Errorf("stage account: %w", err)
		}
		return b.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("account_id", id.String()).Msg("Account registered")
	return account, nil
}

// Login verifies the password and returns a signed token for id. Unknown ids
// and wrong passwords both yield utils.ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, id models.AccountID, password string) (string, error) {
	log.Debug().Str("account_id", id.String()).Msg("Login attempt")

	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Error().Err(err).Str("account_id", id.String()).Msg("Failed to get account")
		}
		return "", utils.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("account_id", id.String()).Msg("Password verification failed")
		return "", utils.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(s.jwtSecret, account.ID.String(), s.jwtTTL)
	if err != nil {
		return "", err
	}

	log.Info().Str("account_id", id.String()).Msg("Login successful")
	return token, nil
}
