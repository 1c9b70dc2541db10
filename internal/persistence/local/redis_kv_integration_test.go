//go:build integration_test || all_tests

package local_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/2beens/gymlog/internal/persistence/local"
	pkgtesting "github.com/2beens/gymlog/pkg/testing"
)

func TestRedisKV_Integration(t *testing.T) {
	ctx, rdb := pkgtesting.GetRedisClientAndCtx(t)
	require.NoError(t, rdb.Del(ctx, "missing", "exercises").Err())
	t.Cleanup(func() {
		rdb.Del(ctx, "exercises")
	})

	testKV(t, local.NewRedisKV(rdb))
}
