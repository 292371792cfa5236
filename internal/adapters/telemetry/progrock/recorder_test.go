package progrock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vp "github.com/vito/progrock"
	"go.trai.ch/weft/internal/adapters/telemetry/progrock"
)

func TestNew(t *testing.T) {
	recorder := progrock.New()
	assert.NotNil(t, recorder)
	assert.NoError(t, recorder.Close())
}

func TestRecorder_Record(t *testing.T) {
	recorder := progrock.NewRecorder(vp.NewTape())

	ctx, vtx := recorder.Record(context.Background(), "resolve /src/main.ts")
	require.NotNil(t, ctx)
	require.NotNil(t, vtx)

	n, err := vtx.Write([]byte("resolving imports\n"))
	require.NoError(t, err)
	assert.Equal(t, len("resolving imports\n"), n)

	vtx.Done(nil)
	assert.NoError(t, recorder.Close())
}
