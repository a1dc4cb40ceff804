package locationrepo_test

import (
	"context"
	"testing"
	"time"

	"transferflow/internal/adapters/out/memory"
	"transferflow/internal/adapters/out/postgres/locationrepo"
	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type LocationRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *locationrepo.GormLocationRepository
	fixtures   memory.Fixtures
}

func (suite *LocationRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db
	suite.Require().NoError(db.AutoMigrate(&locationrepo.LocationDTO{}, &locationrepo.InventoryDTO{}))

	suite.repository = locationrepo.NewGormLocationRepository(db)
	suite.fixtures, err = memory.GenerateFixtures(3, 0, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Save(ctx, suite.fixtures.Locations, suite.fixtures.Inventory))
}

func (suite *LocationRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *LocationRepositoryIntegrationTestSuite) TestGetAll_OrderedByCode() {
	all, err := suite.repository.GetAll(context.Background())

	suite.Require().NoError(err)
	suite.Len(all, len(suite.fixtures.Locations))
	for i := 1; i < len(all); i++ {
		suite.Less(all[i-1].Code(), all[i].Code())
	}
}

func (suite *LocationRepositoryIntegrationTestSuite) TestGet() {
	want := suite.fixtures.Locations[len(suite.fixtures.Locations)-1]

	got, err := suite.repository.Get(context.Background(), want.ID())

	suite.Require().NoError(err)
	suite.Equal(want.Name(), got.Name())
	suite.Equal(want.Type(), got.Type())
	suite.Equal(want.Contact(), got.Contact())
	suite.Equal(want.IsActive(), got.IsActive())

	_, err = suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *LocationRepositoryIntegrationTestSuite) TestSave_IsIdempotent() {
	ctx := context.Background()

	suite.Require().NoError(suite.repository.Save(ctx, suite.fixtures.Locations, suite.fixtures.Inventory))

	var rows int64
	suite.Require().NoError(suite.db.Model(&locationrepo.InventoryDTO{}).Count(&rows).Error)
	suite.Equal(int64(len(suite.fixtures.Inventory)), rows)
}

func (suite *LocationRepositoryIntegrationTestSuite) TestByLocation() {
	ctx := context.Background()
	loc := suite.fixtures.Locations[0]

	stock, err := suite.repository.ByLocation(ctx, loc.ID(), "")
	suite.Require().NoError(err)
	suite.NotEmpty(stock)
	for _, s := range stock {
		suite.Equal(loc.ID(), s.LocationID)
	}

	one, err := suite.repository.ByLocation(ctx, loc.ID(), stock[0].ProductID)
	suite.Require().NoError(err)
	suite.Require().Len(one, 1)
	suite.Equal(stock[0], one[0])
}

func TestLocationRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(LocationRepositoryIntegrationTestSuite))
}
