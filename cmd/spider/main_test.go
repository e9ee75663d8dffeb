package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/spider/internal/config"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()

	var cli CLI
	parser, err := kong.New(&cli, kong.Name("spider"), kong.Vars{"version": "test"})
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, ctx
}

func TestPlayIsDefaultCommand(t *testing.T) {
	t.Parallel()

	cli, ctx := parse(t, "--seed", "9")
	assert.Equal(t, "play", ctx.Command())
	require.NotNil(t, cli.Play.Seed)
	assert.Equal(t, int64(9), *cli.Play.Seed)
	assert.Equal(t, "spider.hcl", cli.Config)
}

func TestSimulateFlags(t *testing.T) {
	t.Parallel()

	cli, ctx := parse(t, "simulate", "--games", "5", "--workers", "2")
	assert.Equal(t, "simulate", ctx.Command())
	assert.Equal(t, 5, cli.Simulate.Games)
	assert.Equal(t, 2, cli.Simulate.Workers)
	assert.Equal(t, 1000, cli.Simulate.MaxMoves)
	assert.Nil(t, cli.Simulate.Seed)
}

func TestInitConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "spider.hcl")
	cmd := &InitConfigCmd{Path: path}

	require.NoError(t, cmd.Run(&Globals{}))
	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), loaded)

	err = cmd.Run(&Globals{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))
	cmd.Force = true
	require.NoError(t, cmd.Run(&Globals{}))
	_, err = config.Load(path)
	assert.NoError(t, err)
}

func TestFirstSeed(t *testing.T) {
	t.Parallel()

	flag, configured := int64(1), int64(2)
	assert.Equal(t, &flag, firstSeed(&flag, &configured))
	assert.Equal(t, &configured, firstSeed(nil, &configured))
	assert.Nil(t, firstSeed(nil, nil))
}
