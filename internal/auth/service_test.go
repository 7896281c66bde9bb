package auth_test

import (
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/frahmantamala/hr-management/internal/auth"
	"golang.org/x/crypto/bcrypt"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

type mockUserRepository struct {
	usersByEmail map[string]*auth.User
	usersByID    map[int64]*auth.User
	hashes       map[string]string
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		usersByEmail: make(map[string]*auth.User),
		usersByID:    make(map[int64]*auth.User),
		hashes:       make(map[string]string),
	}
}

func (m *mockUserRepository) addUser(u *auth.User, password string) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	m.usersByEmail[u.Email] = u
	m.usersByID[u.ID] = u
	m.hashes[u.Email] = string(hash)
}

func (m *mockUserRepository) GetCredentialsByEmail(email string) (string, *auth.User, error) {
	u, ok := m.usersByEmail[email]
	if !ok {
		return "", nil, auth.ErrInvalidCredentials
	}
	return m.hashes[email], u, nil
}

func (m *mockUserRepository) GetByID(userID int64) (*auth.User, error) {
	u, ok := m.usersByID[userID]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return u, nil
}

var _ = ginkgo.Describe("Auth Service", func() {
	var (
		repo    *mockUserRepository
		service *auth.Service
	)

	hrID := int64(7)

	ginkgo.BeforeEach(func() {
		repo = newMockUserRepository()
		repo.addUser(&auth.User{ID: 1, Email: "hr@mail.com", Name: "Hana", Role: auth.RoleHR}, "secret-password")
		repo.addUser(&auth.User{ID: 2, Email: "emp@mail.com", Name: "Eko", Role: auth.RoleEmployee, HRID: &hrID}, "temp-password")

		tokenGen := auth.NewJWTTokenGenerator("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
		service = auth.NewService(repo, tokenGen)
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.It("returns a token pair for valid credentials", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Email: "hr@mail.com", Password: "secret-password"})

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(tokens.AccessToken).NotTo(gomega.BeEmpty())
			gomega.Expect(tokens.RefreshToken).NotTo(gomega.BeEmpty())
		})

		ginkgo.It("rejects a wrong password", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: "hr@mail.com", Password: "wrong"})
			gomega.Expect(err).To(gomega.Equal(auth.ErrInvalidCredentials))
		})

		ginkgo.It("rejects an unknown email", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: "nobody@mail.com", Password: "secret-password"})
			gomega.Expect(err).To(gomega.Equal(auth.ErrInvalidCredentials))
		})
	})

	ginkgo.Describe("ValidateAccessToken", func() {
		ginkgo.It("round-trips identity claims", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Email: "emp@mail.com", Password: "temp-password"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			claims, err := service.ValidateAccessToken(tokens.AccessToken)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(claims.UserID).To(gomega.Equal(int64(2)))
			gomega.Expect(claims.Role).To(gomega.Equal(auth.RoleEmployee))
		})

		ginkgo.It("rejects garbage tokens", func() {
			_, err := service.ValidateAccessToken("not-a-token")
			gomega.Expect(err).To(gomega.Equal(auth.ErrInvalidToken))
		})
	})

	ginkgo.Describe("RefreshTokens", func() {
		ginkgo.It("issues a fresh pair from a valid refresh token", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Email: "hr@mail.com", Password: "secret-password"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			refreshed, err := service.RefreshTokens(tokens.RefreshToken)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(refreshed.AccessToken).NotTo(gomega.BeEmpty())
		})

		ginkgo.It("rejects a malformed refresh token", func() {
			_, err := service.RefreshTokens("bogus")
			gomega.Expect(err).To(gomega.Equal(auth.ErrInvalidToken))
		})
	})

	ginkgo.Describe("ResolveUser", func() {
		ginkgo.It("loads the full identity including the HR link", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Email: "emp@mail.com", Password: "temp-password"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			claims, err := service.ValidateAccessToken(tokens.AccessToken)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			user, err := service.ResolveUser(claims)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(user.HRID).NotTo(gomega.BeNil())
			gomega.Expect(*user.HRID).To(gomega.Equal(hrID))
			gomega.Expect(user.IsHR()).To(gomega.BeFalse())
		})
	})
})
