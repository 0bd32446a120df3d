package repository

import (
	"context"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/welldanyogia/recipe-app-api/internal/database"
	"github.com/welldanyogia/recipe-app-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// dbSuite provides an in-memory database shared by the repository suites
type dbSuite struct {
	suite.Suite
	db  *gorm.DB
	ctx context.Context
}

// SetupSuite runs once before all tests
func (s *dbSuite) SetupSuite() {
	models.PasswordCost = bcrypt.MinCost

	db, err := database.NewInMemory()
	require.NoError(s.T(), err)

	s.db = db
	s.ctx = context.Background()
}

// TearDownSuite runs once after all tests
func (s *dbSuite) TearDownSuite() {
	if s.db != nil {
		database.Close(s.db)
	}
}

// SetupTest runs before each test - clean up data
func (s *dbSuite) SetupTest() {
	s.db.Exec("DELETE FROM recipe_tags")
	s.db.Exec("DELETE FROM recipe_ingredients")
	s.db.Exec("DELETE FROM recipes")
	s.db.Exec("DELETE FROM tags")
	s.db.Exec("DELETE FROM ingredients")
	s.db.Exec("DELETE FROM users")
}

func (s *dbSuite) createUser(email string) *models.User {
	user, err := models.NewUser(email, "password123")
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.db.Create(user).Error)
	return user
}

func (s *dbSuite) createRecipe(userID uint, title string) *models.Recipe {
	recipe := &models.Recipe{Title: title, TimeMinutes: 10, Price: 5.00, UserID: userID}
	require.NoError(s.T(), s.db.Omit("User").Create(recipe).Error)
	return recipe
}
