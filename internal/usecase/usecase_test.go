package usecase_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"go-portfolio-backend/internal/content"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/usecase"
	"go-portfolio-backend/pkg/email"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock dependencies

type MockArticleRepo struct {
	mock.Mock
}

func (m *MockArticleRepo) Upsert(ctx context.Context, article *domain.Article) error {
	return m.Called(ctx, article).Error(0)
}

func (m *MockArticleRepo) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockArticleRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Article, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.Article), args.Get(1).(int64), args.Error(2)
}

func (m *MockArticleRepo) DeleteBySlug(ctx context.Context, slug string) error {
	return m.Called(ctx, slug).Error(0)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendContactEmail(data email.ContactEmailData) error {
	return m.Called(data).Error(0)
}

func (m *MockSender) IsConfigured() bool {
	return m.Called().Bool(0)
}

func validContact() *domain.ContactRequest {
	return &domain.ContactRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Company:   "Analytical Engines",
		Email:     "ada@example.com",
		Country:   "GB",
		Phone:     "+442025551234",
		Message:   "Hello",
	}
}

func TestContactValidation(t *testing.T) {
	t.Run("Should fail when a required field is blank", func(t *testing.T) {
		sender := new(MockSender)
		uc := usecase.NewContactUsecase(sender, nil)

		req := validContact()
		req.Message = "   "
		err := uc.SendContactMessage(context.Background(), req)
		assert.Error(t, err)
		sender.AssertNotCalled(t, "SendContactEmail", mock.Anything)
	})

	t.Run("Should fail on a malformed email", func(t *testing.T) {
		sender := new(MockSender)
		uc := usecase.NewContactUsecase(sender, nil)

		req := validContact()
		req.Email = "ada@example"
		err := uc.SendContactMessage(context.Background(), req)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "email")
	})

	t.Run("Should fail on a malformed phone", func(t *testing.T) {
		sender := new(MockSender)
		uc := usecase.NewContactUsecase(sender, nil)

		req := validContact()
		req.Phone = "++123"
		err := uc.SendContactMessage(context.Background(), req)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "phone")
	})

	t.Run("Should fail when the email service is not configured", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("IsConfigured").Return(false)
		uc := usecase.NewContactUsecase(sender, nil)

		err := uc.SendContactMessage(context.Background(), validContact())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not configured")
	})
}

func TestContactDelivery(t *testing.T) {
	t.Run("Should deliver trimmed field values", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("IsConfigured").Return(true)
		sender.On("SendContactEmail", mock.AnythingOfType("email.ContactEmailData")).Return(nil).Run(func(args mock.Arguments) {
			data := args.Get(0).(email.ContactEmailData)
			assert.Equal(t, "Ada", data.FirstName)
			assert.Equal(t, "ada@example.com", data.Email)
		})
		uc := usecase.NewContactUsecase(sender, nil)

		req := validContact()
		req.FirstName = "  Ada  "
		err := uc.SendContactMessage(context.Background(), req)
		assert.NoError(t, err)
		sender.AssertExpectations(t)
	})

	t.Run("Should wrap delivery failures", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("IsConfigured").Return(true)
		sender.On("SendContactEmail", mock.Anything).Return(errors.New("smtp down"))
		uc := usecase.NewContactUsecase(sender, nil)

		err := uc.SendContactMessage(context.Background(), validContact())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "smtp down")
	})
}

func TestArticleGetRendered(t *testing.T) {
	t.Run("Should render the stored body through the pipeline", func(t *testing.T) {
		repo := new(MockArticleRepo)
		repo.On("GetBySlug", mock.Anything, "hello").Return(&domain.Article{
			Slug:  "hello",
			Title: "Hello",
			Body:  "intro\n\n## Section\n\nbody",
		}, nil)

		uc := usecase.NewArticleUsecase(repo, content.NewProcessor(slog.Default()), validator.New())
		rendered, err := uc.GetRendered(context.Background(), "hello")
		require.NoError(t, err)
		assert.Contains(t, rendered.HTML, "post-section")
		assert.Contains(t, rendered.HTML, "<h2")
	})

	t.Run("Should pass repository misses through", func(t *testing.T) {
		repo := new(MockArticleRepo)
		repo.On("GetBySlug", mock.Anything, "nope").Return(nil, domain.ErrArticleNotFound)

		uc := usecase.NewArticleUsecase(repo, content.NewProcessor(slog.Default()), validator.New())
		_, err := uc.GetRendered(context.Background(), "nope")
		assert.ErrorIs(t, err, domain.ErrArticleNotFound)
	})
}

func TestArticleSave(t *testing.T) {
	t.Run("Should reject an article without a title", func(t *testing.T) {
		repo := new(MockArticleRepo)
		uc := usecase.NewArticleUsecase(repo, content.NewProcessor(slog.Default()), validator.New())

		err := uc.Save(context.Background(), &domain.Article{Slug: "x", Body: "b"})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("Should upsert a valid article", func(t *testing.T) {
		repo := new(MockArticleRepo)
		repo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.Article")).Return(nil)
		uc := usecase.NewArticleUsecase(repo, content.NewProcessor(slog.Default()), validator.New())

		err := uc.Save(context.Background(), &domain.Article{Slug: "x", Title: "T", Body: "b"})
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestArticleList(t *testing.T) {
	t.Run("Should clamp out-of-range paging values", func(t *testing.T) {
		repo := new(MockArticleRepo)
		repo.On("Fetch", mock.Anything, 10, 0).Return([]domain.Article{}, int64(0), nil)
		uc := usecase.NewArticleUsecase(repo, content.NewProcessor(slog.Default()), validator.New())

		_, _, err := uc.List(context.Background(), 500, -3)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
