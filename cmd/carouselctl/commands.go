package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"
	"github.com/storefront/backend/internal/admin/carousel"
	domaincarousel "github.com/storefront/backend/internal/domain/carousel"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

func newLoginCmd(a *app) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as the storefront admin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				p, err := readSecret(cmd.InOrStdin(), cmd.ErrOrStderr(), "Password: ")
				if err != nil {
					return err
				}
				password = p
			}
			c, err := a.client(false)
			if err != nil {
				return err
			}
			token, err := c.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			a.ws.Token = token.AccessToken
			a.ws.TokenExpiresAt = token.ExpiresAt
			if err := a.persist(nil); err != nil {
				return err
			}
			a.log.Info("Logged in", zap.String("server", a.ws.Server), zap.Time("expires_at", token.ExpiresAt))
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s until %s\n", a.ws.Server, token.ExpiresAt.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "admin", "admin username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password (read from stdin when empty)")
	return cmd
}

func newTokenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.ws.TokenValid(a.now()) {
				return errNotLoggedIn
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.ws.Token)
			return nil
		},
	}
}

func newPullCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Fetch the carousel from the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client(false)
			if err != nil {
				return err
			}
			m := a.manager(c)
			if force {
				if err := m.Reset(); err != nil {
					return err
				}
			}
			slides, err := c.List(cmd.Context())
			if err != nil {
				return err
			}
			if err := m.Load(slides); err != nil {
				if errors.Is(err, carousel.ErrInvalidTransition) {
					return fmt.Errorf("%w; push or reset first, or pull --force to discard local edits", err)
				}
				return err
			}
			a.ws.PulledAt = a.now()
			if err := a.persist(m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pulled %d slides\n", len(slides))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "discard local edits")
	return cmd
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the working list and pending changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := a.manager(nil)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Server: %s\nState:  %s\n\n", a.ws.Server, m.State())

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "POS\tID\tTITLE\tIMAGE")
			for i, d := range m.Working() {
				id := "new"
				if d.ID != nil {
					id = strconv.FormatInt(*d.ID, 10)
				}
				img := d.ImageRef
				if d.Image != nil {
					img = "staged " + d.Image.Preview.String()
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, id, d.Title, img)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			changes := m.Changes()
			if len(changes) == 0 {
				fmt.Fprintln(out, "\nNo local changes")
				return nil
			}
			fmt.Fprintln(out, "\nChanges to push:")
			for _, c := range changes {
				fmt.Fprintf(out, "  %d. %s: %s\n", c.Position, c.Draft.Title, describeChange(c))
			}
			return nil
		},
	}
}

func describeChange(c carousel.Change) string {
	if c.Added {
		return "added"
	}
	var parts []string
	if c.Moved {
		parts = append(parts, fmt.Sprintf("moved from %d", c.FromOrder))
	}
	if c.Edited {
		parts = append(parts, "edited")
	}
	if c.ImageReplaced {
		parts = append(parts, "new image")
	}
	return strings.Join(parts, ", ")
}

// slideFlags are the editable fields shared by edit and add
type slideFlags struct {
	title, subtitle, altText string
	image, imageRef          string
}

func (f *slideFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "slide title")
	cmd.Flags().StringVar(&f.subtitle, "subtitle", "", "subtitle (empty clears it)")
	cmd.Flags().StringVar(&f.altText, "alt-text", "", "alternative text (empty clears it)")
	cmd.Flags().StringVar(&f.image, "image", "", "local image file to upload on push")
}

// apply sends each changed flag through the editor, in a fixed order
func (f *slideFlags) apply(cmd *cobra.Command, ed *carousel.SlideEditor) (int, error) {
	steps := []struct {
		flag string
		set  func() error
	}{
		{"title", func() error { return ed.SetTitle(f.title) }},
		{"subtitle", func() error { return ed.SetSubtitle(f.subtitle) }},
		{"alt-text", func() error { return ed.SetAltText(f.altText) }},
		{"image-ref", func() error { return ed.SetImageRef(f.imageRef) }},
		{"image", func() error { return ed.SetImageFromFile(f.image) }},
	}
	applied := 0
	for _, s := range steps {
		if cmd.Flags().Lookup(s.flag) == nil || !cmd.Flags().Changed(s.flag) {
			continue
		}
		if err := s.set(); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}

func newEditCmd(a *app) *cobra.Command {
	var f slideFlags

	cmd := &cobra.Command{
		Use:   "edit <pos>",
		Short: "Edit the slide at a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePosition(args[0])
			if err != nil {
				return err
			}
			m := a.manager(nil)
			ed, err := m.Edit(pos)
			if err != nil {
				return err
			}
			applied, err := f.apply(cmd, ed)
			if err != nil {
				return err
			}
			if applied == 0 {
				return errors.New("nothing to change; pass --title, --subtitle, --alt-text or --image")
			}
			if err := a.persist(m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Staged changes to slide %d\n", pos)
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	var f slideFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a new slide",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if f.image == "" && f.imageRef == "" {
				return errors.New("a new slide needs --image or --image-ref")
			}
			m := a.manager(nil)
			ed := m.EditNew()
			if _, err := f.apply(cmd, ed); err != nil {
				return err
			}
			if err := a.persist(m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added slide %d\n", len(m.Working()))
			return nil
		},
	}
	f.bind(cmd)
	cmd.Flags().StringVar(&f.imageRef, "image-ref", "", "reference of an image already in the store")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newMoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move a slide to another position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parsePosition(args[0])
			if err != nil {
				return err
			}
			to, err := parsePosition(args[1])
			if err != nil {
				return err
			}
			m := a.manager(nil)
			if err := m.Move(from, to); err != nil {
				return err
			}
			if err := a.persist(m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved slide %d to %d\n", from, to)
			return nil
		},
	}
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Discard local edits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := a.manager(nil)
			if err := m.Reset(); err != nil {
				return err
			}
			if err := a.persist(m); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Local edits discarded")
			return nil
		},
	}
}

func newPushCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Save the working list to the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client(true)
			if err != nil {
				return err
			}
			m := a.manager(c)
			if m.State() == carousel.StateIdle {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to push")
				return nil
			}
			saveErr := m.Save(cmd.Context())
			// The workspace is written either way so a failed push keeps its edits.
			if err := a.persist(m); err != nil {
				return err
			}
			if saveErr != nil {
				a.log.Warn("Push failed", zap.Error(saveErr))
				return saveErr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d slides\n", len(m.Snapshot()))
			return nil
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a slide on the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid slide id %q", args[0])
			}
			c, err := a.client(true)
			if err != nil {
				return err
			}
			removed, err := c.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			m := a.manager(c)
			if err := m.Forget(id); err != nil {
				return err
			}
			if err := a.persist(m); err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "Slide %d did not exist\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted slide %d\n", id)
			return nil
		},
	}
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for admin.password_hash",
		Args:  cobra.MaximumNArgs(1),
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				p, err := readSecret(cmd.InOrStdin(), cmd.ErrOrStderr(), "Password: ")
				if err != nil {
					return err
				}
				password = p
			}
			if password == "" {
				return errors.New("password must not be empty")
			}
			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func parsePosition(s string) (int, error) {
	pos, err := strconv.Atoi(s)
	if err != nil || pos < 1 {
		return 0, fmt.Errorf("invalid position %q: positions start at 1", s)
	}
	return pos, nil
}

func readSecret(in io.Reader, prompt io.Writer, label string) (string, error) {
	fmt.Fprint(prompt, label)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// sizeValue is a pflag.Value for human-readable byte sizes
type sizeValue struct {
	n *int64
}

func newSizeValue(n *int64) *sizeValue {
	return &sizeValue{n: n}
}

func (v *sizeValue) String() string {
	if v.n == nil || *v.n == 0 {
		return units.BytesSize(float64(domaincarousel.DefaultMaxImageSize))
	}
	return units.BytesSize(float64(*v.n))
}

func (v *sizeValue) Set(s string) error {
	n, err := units.RAMInBytes(s)
	if err != nil {
		return err
	}
	if n <= 0 {
		return fmt.Errorf("size must be positive")
	}
	*v.n = n
	return nil
}

func (v *sizeValue) Type() string {
	return "size"
}
