//go:build e2e

package e2e

import (
	"library-lending/internal/domain/user"
	"library-lending/internal/pkg/config"
	"library-lending/tests/common/authtest"
	"library-lending/tests/common/dbtest"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// SharedSuite owns one migrated database and a fully wired router. Every subtest
// starts from an empty schema plus reference data and a fresh fake catalog.
type SharedSuite struct {
	suite.Suite
	Router  *gin.Engine
	DB      *pgxpool.Pool
	Config  config.Config
	Catalog *FakeCatalog
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	s.Catalog = NewFakeCatalog()
	pool, dbCfg := createDatabase(t, startPostgres(t))
	s.DB = pool
	s.Router, s.Config = startApp(t, pool, dbCfg, s.Catalog)
}

func (s *SharedSuite) SetupTest() {
	s.reset()
}

func (s *SharedSuite) SetupSubTest() {
	s.reset()
}

func (s *SharedSuite) reset() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "Failed to reset database state")
	s.Catalog.Reset()
}

// Login mirrors a profile for email and returns a bearer token for it.
func (s *SharedSuite) Login(email string, role user.Role) authtest.Session {
	return authtest.CreateAndLogin(s.T(), s.DB, s.Config.JWT, email, role)
}
