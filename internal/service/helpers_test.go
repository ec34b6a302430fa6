package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/examdesk/examdesk-backend/internal/config"
	"github.com/examdesk/examdesk-backend/internal/model"
	"github.com/examdesk/examdesk-backend/internal/repository/memory"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	cfg       *config.Config
	store     *memory.Store
	mr        *miniredis.Miniredis
	auth      *AuthService
	users     *UserService
	choices   *ChoiceService
	questions *QuestionService
	answers   *AnswerService
}

func newTestEnv(t *testing.T, tweak ...func(*config.Config)) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{
		JWTSecret:           "test-secret",
		JWTExpiry:           time.Hour,
		BcryptCost:          bcrypt.MinCost,
		AllowSelfRoleChange: true,
	}
	for _, fn := range tweak {
		fn(cfg)
	}

	policy := KeepWhenAbsent
	if cfg.ClearChoicesWhenAbsent {
		policy = ClearWhenAbsent
	}

	store := memory.New()
	log := zerolog.Nop()
	auth := NewAuthService(cfg, rdb)

	return &testEnv{
		cfg:       cfg,
		store:     store,
		mr:        mr,
		auth:      auth,
		users:     NewUserService(store.Users(), store, auth, cfg.AllowSelfRoleChange, log),
		choices:   NewChoiceService(store.Choices(), log),
		questions: NewQuestionService(store.Questions(), store.Choices(), store, policy, log),
		answers:   NewAnswerService(store.Answers(), store.Questions(), store, log),
	}
}

func (e *testEnv) mustUser(t *testing.T, email string, role model.Role) *model.User {
	t.Helper()
	u, err := e.users.Register(context.Background(), NewUser{Email: email, Password: "secret", Role: role})
	require.NoError(t, err)
	return u
}

func ptr[T any](v T) *T { return &v }
