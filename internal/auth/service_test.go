package auth_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/SenszZ00/cybersafelara1-sub000/internal/auth"
	userDatamodel "github.com/SenszZ00/cybersafelara1-sub000/internal/core/datamodel/user"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Service Suite")
}

type mockUserRepository struct {
	users     map[string]*userDatamodel.User
	createErr error
	nextID    int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*userDatamodel.User), nextID: 1}
}

func (m *mockUserRepository) addUser(u *userDatamodel.User) *userDatamodel.User {
	if u.ID == 0 {
		u.ID = m.nextID
		m.nextID++
	}
	m.users[u.Username] = u
	return u
}

func (m *mockUserRepository) GetByUsername(username string) (*userDatamodel.User, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (m *mockUserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) Create(u *userDatamodel.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.users[u.Username]; exists {
		return auth.ErrDuplicateUser
	}
	m.addUser(u)
	return nil
}

var _ = Describe("AuthService", func() {
	var (
		repo    *mockUserRepository
		tokens  *auth.JWTTokenGenerator
		service *auth.Service
	)

	testLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	newActiveUser := func(username, password string, role userDatamodel.Role) *userDatamodel.User {
		hash, err := auth.HashPassword(password, 4)
		Expect(err).NotTo(HaveOccurred())
		return repo.addUser(&userDatamodel.User{
			Username:     username,
			Email:        username + "@campus.test",
			PasswordHash: hash,
			Role:         role,
			IsActive:     true,
		})
	}

	BeforeEach(func() {
		repo = newMockUserRepository()
		tokens = auth.NewJWTTokenGenerator(
			"access-secret-for-tests-0123456789ab",
			"refresh-secret-for-tests-0123456789a",
			time.Minute,
			time.Hour,
		)
		service = auth.NewService(repo, tokens, 4, testLogger)
	})

	Describe("Authenticate", func() {
		It("returns a token pair for valid credentials", func() {
			u := newActiveUser("student", "correct-horse", userDatamodel.RoleUser)

			pair, err := service.Authenticate(auth.LoginDTO{Username: "student", Password: "correct-horse"})
			Expect(err).NotTo(HaveOccurred())
			Expect(pair.AccessToken).NotTo(BeEmpty())
			Expect(pair.RefreshToken).NotTo(BeEmpty())

			claims, err := tokens.ValidateToken(pair.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal(u.ID))
			Expect(claims.Role).To(Equal(userDatamodel.RoleUser))
		})

		It("rejects a wrong password", func() {
			newActiveUser("student", "correct-horse", userDatamodel.RoleUser)

			_, err := service.Authenticate(auth.LoginDTO{Username: "student", Password: "battery-staple"})
			Expect(err).To(MatchError(auth.ErrInvalidCredentials))
		})

		It("rejects an unknown username", func() {
			_, err := service.Authenticate(auth.LoginDTO{Username: "nobody", Password: "irrelevant"})
			Expect(err).To(MatchError(auth.ErrInvalidCredentials))
		})

		It("rejects a deactivated account before checking the password", func() {
			u := newActiveUser("former", "correct-horse", userDatamodel.RoleIT)
			u.IsActive = false

			_, err := service.Authenticate(auth.LoginDTO{Username: "former", Password: "correct-horse"})
			Expect(err).To(MatchError(auth.ErrUserInactive))
		})

		It("rejects empty credentials without hitting the repository", func() {
			_, err := service.Authenticate(auth.LoginDTO{Username: "", Password: ""})
			Expect(err).To(MatchError("username is required"))
		})
	})

	Describe("Register", func() {
		It("creates an active regular user with a verifiable password hash", func() {
			current, err := service.Register(auth.RegisterDTO{
				Username: "newstudent",
				Email:    "newstudent@campus.test",
				Password: "longenough",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(current.Username).To(Equal("newstudent"))
			Expect(current.Role).To(Equal(userDatamodel.RoleUser))

			stored := repo.users["newstudent"]
			Expect(stored.IsActive).To(BeTrue())
			Expect(auth.VerifyPassword(stored.PasswordHash, "longenough")).To(Succeed())
		})

		It("always assigns the regular user role", func() {
			current, err := service.Register(auth.RegisterDTO{
				Username: "wannabe-admin",
				Email:    "wannabe@campus.test",
				Password: "longenough",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(current.Role).To(Equal(userDatamodel.RoleUser))
		})

		It("propagates a duplicate username from the repository", func() {
			newActiveUser("student", "correct-horse", userDatamodel.RoleUser)

			_, err := service.Register(auth.RegisterDTO{
				Username: "student",
				Email:    "other@campus.test",
				Password: "longenough",
			})
			Expect(err).To(MatchError(auth.ErrDuplicateUser))
		})

		It("rejects a short password", func() {
			_, err := service.Register(auth.RegisterDTO{
				Username: "newstudent",
				Email:    "newstudent@campus.test",
				Password: "short",
			})
			Expect(err).To(MatchError("password must be at least 8 characters"))
		})

		It("rejects a malformed email", func() {
			_, err := service.Register(auth.RegisterDTO{
				Username: "newstudent",
				Email:    "not-an-email",
				Password: "longenough",
			})
			Expect(err).To(MatchError("a valid email is required"))
		})
	})

	Describe("RefreshTokens", func() {
		It("issues a fresh pair from a valid refresh token", func() {
			u := newActiveUser("itsupport", "correct-horse", userDatamodel.RoleIT)

			pair, err := service.Authenticate(auth.LoginDTO{Username: "itsupport", Password: "correct-horse"})
			Expect(err).NotTo(HaveOccurred())

			renewed, err := service.RefreshTokens(pair.RefreshToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(renewed.AccessToken).NotTo(BeEmpty())
			Expect(renewed.RefreshToken).NotTo(BeEmpty())

			claims, err := tokens.ValidateToken(renewed.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal(u.ID))
			Expect(claims.Role).To(Equal(userDatamodel.RoleIT))
		})

		It("rejects garbage input", func() {
			_, err := service.RefreshTokens("not.a.token")
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})
	})

	Describe("token validation", func() {
		It("accepts tokens signed with either secret", func() {
			access, err := tokens.GenerateAccessToken(7, userDatamodel.RoleAdmin)
			Expect(err).NotTo(HaveOccurred())
			refresh, err := tokens.GenerateRefreshToken(7, userDatamodel.RoleAdmin)
			Expect(err).NotTo(HaveOccurred())

			for _, tok := range []string{access, refresh} {
				claims, err := tokens.ValidateToken(tok)
				Expect(err).NotTo(HaveOccurred())
				Expect(claims.UserID).To(Equal(int64(7)))
			}
		})

		It("reports an expired token", func() {
			expired := auth.NewJWTTokenGenerator(
				"access-secret-for-tests-0123456789ab",
				"refresh-secret-for-tests-0123456789a",
				-time.Minute,
				-time.Minute,
			)
			tok, err := expired.GenerateAccessToken(7, userDatamodel.RoleUser)
			Expect(err).NotTo(HaveOccurred())

			_, err = tokens.ValidateToken(tok)
			Expect(err).To(MatchError(auth.ErrTokenExpired))
		})

		It("rejects a token signed with an unknown secret", func() {
			other := auth.NewJWTTokenGenerator(
				"completely-different-secret-material",
				"completely-different-secret-material",
				time.Minute,
				time.Minute,
			)
			tok, err := other.GenerateAccessToken(7, userDatamodel.RoleUser)
			Expect(err).NotTo(HaveOccurred())

			_, err = tokens.ValidateToken(tok)
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})
	})

	Describe("GetCurrentUser", func() {
		It("returns the profile of an active user", func() {
			u := newActiveUser("student", "correct-horse", userDatamodel.RoleUser)

			current, err := service.GetCurrentUser(u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(current.Username).To(Equal("student"))
			Expect(current.Email).To(Equal("student@campus.test"))
		})

		It("treats a deleted user as an invalid token", func() {
			_, err := service.GetCurrentUser(999)
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})

		It("refuses a deactivated user", func() {
			u := newActiveUser("former", "correct-horse", userDatamodel.RoleUser)
			u.IsActive = false

			_, err := service.GetCurrentUser(u.ID)
			Expect(err).To(MatchError(auth.ErrUserInactive))
		})
	})
})

var _ = Describe("Role checks", func() {
	It("distinguishes admin and IT actors", func() {
		admin := &auth.CurrentUser{Role: userDatamodel.RoleAdmin}
		it := &auth.CurrentUser{Role: userDatamodel.RoleIT}
		regular := &auth.CurrentUser{Role: userDatamodel.RoleUser}

		Expect(admin.IsAdmin()).To(BeTrue())
		Expect(it.IsIT()).To(BeTrue())
		Expect(regular.IsAdmin()).To(BeFalse())
		Expect(regular.IsIT()).To(BeFalse())
	})
})
