//go:build integration_test || all_tests

package remote_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/suite"

	"github.com/2beens/gymlog/internal/gym"
	"github.com/2beens/gymlog/internal/persistence"
	"github.com/2beens/gymlog/internal/persistence/remote"
)

type RemoteAdapterSuite struct {
	suite.Suite
	dockerPool *dockertest.Pool
	resource   *dockertest.Resource
	db         *pgxpool.Pool
	adapter    *remote.Adapter
}

func TestRemoteAdapterSuite(t *testing.T) {
	suite.Run(t, new(RemoteAdapterSuite))
}

func (s *RemoteAdapterSuite) SetupSuite() {
	ctx := context.Background()

	var err error
	s.dockerPool, err = dockertest.NewPool("")
	s.Require().NoError(err)
	s.Require().NoError(s.dockerPool.Client.Ping())

	s.resource, err = s.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=gymlog",
			"POSTGRES_HOST_AUTH_METHOD=trust",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	s.Require().NoError(err)

	dsn := fmt.Sprintf("postgres://postgres@localhost:%s/gymlog?sslmode=disable", s.resource.GetPort("5432/tcp"))
	s.Require().NoError(s.dockerPool.Retry(func() error {
		sqlDB, err := sql.Open("postgres", dsn)
		if err != nil {
			return err
		}
		defer sqlDB.Close()
		return sqlDB.Ping()
	}))

	s.db, err = pgxpool.New(ctx, dsn)
	s.Require().NoError(err)
	s.Require().NoError(remote.Migrate(ctx, s.db))
	// applying twice is a no-op
	s.Require().NoError(remote.Migrate(ctx, s.db))
	s.Require().NoError(remote.MigrationStatus(ctx, s.db))

	s.adapter = remote.NewAdapter(s.db, "user-"+uuid.NewString())
}

func (s *RemoteAdapterSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.resource != nil {
		if err := s.dockerPool.Purge(s.resource); err != nil {
			fmt.Printf("purge postgres: %s\n", err)
		}
	}
}

func (s *RemoteAdapterSuite) TestRoundTripAndCascade() {
	ctx := context.Background()

	squat := gym.Exercise{ID: uuid.NewString(), Name: "Squat", Category: gym.Category.Legs, CreatedAt: 100}
	bench := gym.Exercise{ID: uuid.NewString(), Name: "Bench", Category: gym.Category.Chest, CreatedAt: 200}
	for _, e := range []gym.Exercise{squat, bench} {
		s.Require().NoError(s.adapter.Persist(ctx, persistence.Mutation{Kind: persistence.KindExerciseAdded, Exercise: &e}))
	}

	logEntry := gym.LogEntry{
		ID: uuid.NewString(), ExerciseID: squat.ID, Date: "2024-05-01", CreatedAt: 300,
		Sets: []gym.SetRecord{{Weight: 100, Reps: 5}, {Weight: 110, Reps: 3}, {Weight: 100, Reps: 5}},
	}
	s.Require().NoError(s.adapter.Persist(ctx, persistence.Mutation{Kind: persistence.KindLogAdded, Log: &logEntry}))

	state := gym.Snapshot{
		Plan:       []string{bench.ID, squat.ID},
		Completion: map[string][]string{"2024-05-01": {squat.ID}},
	}
	s.Require().NoError(s.adapter.Persist(ctx, persistence.Mutation{Kind: persistence.KindUserStateChanged, Snapshot: state}))

	squat.Image = "https://cdn.example.com/squat.jpg"
	s.Require().NoError(s.adapter.Persist(ctx, persistence.Mutation{Kind: persistence.KindExerciseImageUpdated, Exercise: &squat}))

	loaded := s.adapter.LoadAll(ctx)
	s.Equal([]gym.Exercise{squat, bench}, loaded.Exercises)
	s.Equal([]gym.LogEntry{logEntry}, loaded.Logs)
	s.Equal(state.Plan, loaded.Plan)
	s.Equal(state.Completion, loaded.Completion)

	// deleting the exercise cascades to its logs and sets
	s.Require().NoError(s.adapter.Persist(ctx, persistence.Mutation{Kind: persistence.KindExerciseDeleted, EntityID: squat.ID}))
	loaded = s.adapter.LoadAll(ctx)
	s.Equal([]gym.Exercise{bench}, loaded.Exercises)
	s.Empty(loaded.Logs)

	var setsCount int
	s.Require().NoError(s.db.QueryRow(ctx, `SELECT count(*) FROM sets WHERE log_id = $1`, logEntry.ID).Scan(&setsCount))
	s.Zero(setsCount)
}

func (s *RemoteAdapterSuite) TestAddLogIsAtomic() {
	ctx := context.Background()

	// unknown exercise: the FK check fails, nothing may be left behind
	orphan := gym.LogEntry{
		ID: uuid.NewString(), ExerciseID: "missing", Date: "2024-05-01", CreatedAt: 1,
		Sets: []gym.SetRecord{{Weight: 10, Reps: 10}},
	}
	err := s.adapter.Persist(ctx, persistence.Mutation{Kind: persistence.KindLogAdded, Log: &orphan})
	s.Require().ErrorIs(err, remote.ErrExerciseNotFound)

	var logsCount int
	s.Require().NoError(s.db.QueryRow(ctx, `SELECT count(*) FROM logs WHERE id = $1`, orphan.ID).Scan(&logsCount))
	s.Zero(logsCount)
}

func (s *RemoteAdapterSuite) TestUpdateImage_NotFound() {
	err := s.adapter.Persist(context.Background(), persistence.Mutation{
		Kind:     persistence.KindExerciseImageUpdated,
		Exercise: &gym.Exercise{ID: "nope", Image: "x"},
	})
	s.ErrorIs(err, remote.ErrExerciseNotFound)
}

func (s *RemoteAdapterSuite) TestUnknownMutation() {
	err := s.adapter.Persist(context.Background(), persistence.Mutation{Kind: "bogus"})
	s.ErrorIs(err, remote.ErrUnknownMutation)
}
