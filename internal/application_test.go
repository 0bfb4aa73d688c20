package application

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/torus-tictactoe/internal/config"
	"github.com/rocketscienceinc/torus-tictactoe/testing/suite"
)

func TestRun(t *testing.T) {
	t.Run("Human game from input to winner", func(t *testing.T) {
		// Given: a human-vs-human config and a scripted input
		ctx, st := suite.New(t)
		conf := &config.Config{
			LogLevel: "info",
			Mode:     "human",
			View:     config.ViewTiled,
			Computer: config.Computer{Mark: "O", ThinkDelay: time.Millisecond, Seed: 3},
		}
		out := &bytes.Buffer{}

		// When: running the app over the moves X4 O0 X8 O2 X1 O7 X3
		err := run(ctx, st.Logger, st.Logger, conf, strings.NewReader("4\n0\n8\n2\n1\n7\n3\nquit\n"), out)

		// Then: the tiled board and the result were printed
		require.NoError(t, err)
		assert.Contains(t, out.String(), "---------+---------+---------")
		assert.Contains(t, out.String(), "Winner: X")
	})

	t.Run("Invalid mode is reported", func(t *testing.T) {
		ctx, st := suite.New(t)
		conf := &config.Config{Mode: "online", Computer: config.Computer{Mark: "O"}}

		err := run(ctx, st.Logger, st.Logger, conf, strings.NewReader(""), &bytes.Buffer{})

		require.Error(t, err)
	})
}
