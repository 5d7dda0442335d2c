package main

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/storefront/backend/internal/admin/carousel"
	"github.com/storefront/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type ctl struct {
	t         *testing.T
	server    string
	workspace string
}

func newCtl(t *testing.T, server string) *ctl {
	return &ctl{t: t, server: server, workspace: filepath.Join(t.TempDir(), "carousel.yaml")}
}

// run executes one carouselctl invocation and returns its stdout
func (c *ctl) run(stdin string, args ...string) (string, error) {
	c.t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--workspace", c.workspace, "--server", c.server, "--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (c *ctl) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run("", args...)
	require.NoError(c.t, err, out)
	return out
}

func (c *ctl) workspaceFile() *carousel.Workspace {
	c.t.Helper()
	ws, err := carousel.LoadWorkspace(c.workspace)
	require.NoError(c.t, err)
	return ws
}

func writePNG(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 2))))
	path := filepath.Join(t.TempDir(), "hero.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func TestCarouselctl_EditSession(t *testing.T) {
	srv := testutil.NewAPIServer(t)
	c := newCtl(t, srv.URL)

	out := c.mustRun("login", "--password", testutil.AdminPassword)
	assert.Contains(t, out, "Logged in to "+srv.URL)
	assert.NotEmpty(t, c.workspaceFile().Token)

	assert.Equal(t, "Pulled 0 slides\n", c.mustRun("pull"))

	out = c.mustRun("add", "--title", "Summer sale", "--subtitle", "Up to 50% off", "--image", writePNG(t))
	assert.Equal(t, "Added slide 1\n", out)
	out = c.mustRun("add", "--title", "New arrivals", "--image-ref", "img://arrivals")
	assert.Equal(t, "Added slide 2\n", out)

	out = c.mustRun("status")
	assert.Contains(t, out, "State:  dirty")
	assert.Contains(t, out, "staged hero.png (image/png, 4x2,")
	assert.Contains(t, out, "2. New arrivals: added")

	assert.Equal(t, "Saved 2 slides\n", c.mustRun("push"))
	ws := c.workspaceFile()
	assert.Equal(t, carousel.StateIdle, ws.State)
	require.Len(t, ws.Snapshot, 2)
	assert.True(t, strings.HasPrefix(ws.Snapshot[0].ImageRef, "mem://"))
	assert.Equal(t, "Nothing to push\n", c.mustRun("push"))

	c.mustRun("move", "2", "1")
	c.mustRun("edit", "2", "--title", "Summer sale ends soon", "--subtitle", "")
	out = c.mustRun("status")
	assert.Contains(t, out, "1. New arrivals: moved from 2")
	assert.Contains(t, out, "2. Summer sale ends soon: moved from 1, edited")
	c.mustRun("push")

	stored, err := srv.Slides.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "New arrivals", stored[0].Title)
	assert.Equal(t, 1, stored[0].Order)
	assert.Equal(t, "Summer sale ends soon", stored[1].Title)
	assert.Nil(t, stored[1].Subtitle)
	assert.Equal(t, ws.Snapshot[0].ImageRef, stored[1].ImageRef)

	out = c.mustRun("delete", "1")
	assert.Contains(t, out, "Deleted slide")
	assert.Len(t, c.workspaceFile().Working, 1)
	assert.Equal(t, "Slide 1 did not exist\n", c.mustRun("delete", "1"))
}

func TestCarouselctl_ResetAndForcedPull(t *testing.T) {
	srv := testutil.NewAPIServer(t)
	c := newCtl(t, srv.URL)
	c.mustRun("pull")

	c.mustRun("add", "--title", "Draft", "--image-ref", "img://draft")
	_, err := c.run("", "pull")
	require.Error(t, err)
	assert.ErrorIs(t, err, carousel.ErrInvalidTransition)
	assert.Contains(t, err.Error(), "pull --force")

	c.mustRun("pull", "--force")
	assert.Empty(t, c.workspaceFile().Working)

	c.mustRun("add", "--title", "Draft", "--image-ref", "img://draft")
	assert.Equal(t, "Local edits discarded\n", c.mustRun("reset"))
	ws := c.workspaceFile()
	assert.Equal(t, carousel.StateIdle, ws.State)
	assert.Empty(t, ws.Working)
}

func TestCarouselctl_FailedPushKeepsEdits(t *testing.T) {
	srv := testutil.NewAPIServer(t)
	c := newCtl(t, srv.URL)
	c.mustRun("pull")
	c.mustRun("add", "--title", "Draft", "--image-ref", "img://draft")

	// not logged in
	_, err := c.run("", "push")
	assert.ErrorIs(t, err, errNotLoggedIn)

	c.mustRun("login", "--password", testutil.AdminPassword)
	c.mustRun("edit", "1", "--title", " ")
	_, err = c.run("", "push")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Title is required for slide 1")

	ws := c.workspaceFile()
	assert.Equal(t, carousel.StateDirty, ws.State)
	require.Len(t, ws.Working, 1)
	assert.Equal(t, " ", ws.Working[0].Title)
}

func TestCarouselctl_InputErrors(t *testing.T) {
	srv := testutil.NewAPIServer(t)
	c := newCtl(t, srv.URL)
	c.mustRun("pull")

	_, err := c.run("", "add", "--title", "No image")
	assert.EqualError(t, err, "a new slide needs --image or --image-ref")

	_, err = c.run("", "move", "0", "1")
	assert.ErrorContains(t, err, "positions start at 1")

	_, err = c.run("", "edit", "1", "--title", "x")
	assert.ErrorIs(t, err, carousel.ErrPositionOutOfRange)

	c.mustRun("add", "--title", "A", "--image-ref", "img://a")
	_, err = c.run("", "edit", "1")
	assert.ErrorContains(t, err, "nothing to change")

	_, err = c.run("", "delete", "abc")
	assert.ErrorContains(t, err, "invalid slide id")

	_, err = c.run("", "login", "--password", "wrong")
	assert.ErrorContains(t, err, "Invalid username or password")

	_, err = c.run("", "token")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestCarouselctl_LoginReadsPasswordFromStdin(t *testing.T) {
	srv := testutil.NewAPIServer(t)
	c := newCtl(t, srv.URL)

	_, err := c.run(testutil.AdminPassword+"\n", "login")
	require.NoError(t, err)

	out := c.mustRun("token")
	assert.Equal(t, c.workspaceFile().Token+"\n", out)
}

func TestCarouselctl_HashPassword(t *testing.T) {
	c := newCtl(t, "http://unused.invalid")

	out := c.mustRun("hash-password", "s3cret")
	hash := strings.TrimSpace(out)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))
	_, err := os.Stat(c.workspace)
	assert.True(t, os.IsNotExist(err), "hash-password must not touch the workspace")

	out, err = c.run("from-stdin\n", "hash-password")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(out)), []byte("from-stdin")))

	_, err = c.run("", "hash-password")
	assert.EqualError(t, err, "password must not be empty")
}

func TestSizeValue(t *testing.T) {
	var n int64
	v := newSizeValue(&n)
	assert.Equal(t, "5MiB", v.String())
	require.NoError(t, v.Set("2MiB"))
	assert.Equal(t, int64(2*1024*1024), n)
	assert.Error(t, v.Set("lots"))
	assert.Equal(t, "size", v.Type())
}
