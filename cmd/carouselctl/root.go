package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/storefront/backend/internal/admin/carousel"
	domaincarousel "github.com/storefront/backend/internal/domain/carousel"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const defaultServer = "http://localhost:8080"

var errNotLoggedIn = errors.New("not logged in or token expired; run carouselctl login")

// app is the state shared by every subcommand of one invocation
type app struct {
	workspacePath string
	server        string
	logLevel      string
	maxImageSize  int64
	maxNewImages  int

	ws  *carousel.Workspace
	log *zap.Logger
	now func() time.Time
}

func newRootCmd() *cobra.Command {
	a := &app{now: time.Now}

	cmd := &cobra.Command{
		Use:           "carouselctl",
		Short:         "Edit the storefront homepage carousel",
		Long:          "carouselctl pulls the carousel into a local workspace, stages edits offline and pushes them back in one batch.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logger.New(&logger.Config{
				Level:      a.logLevel,
				Format:     "console",
				Output:     "stderr",
				TimeFormat: "15:04:05",
			})
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.log = log

			ws, err := carousel.LoadWorkspace(a.workspacePath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("server") || ws.Server == "" {
				ws.Server = a.server
			}
			a.ws = ws
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&a.workspacePath, "workspace", carousel.DefaultWorkspacePath(), "workspace file")
	cmd.PersistentFlags().StringVar(&a.server, "server", defaultServer, "storefront API server")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	cmd.PersistentFlags().Var(newSizeValue(&a.maxImageSize), "max-image-size", "largest image accepted for upload, e.g. 5MiB")
	cmd.PersistentFlags().IntVar(&a.maxNewImages, "max-batch-images", domaincarousel.DefaultMaxBatchImages, "new images one push may carry")

	cmd.AddCommand(
		newLoginCmd(a),
		newTokenCmd(a),
		newPullCmd(a),
		newStatusCmd(a),
		newEditCmd(a),
		newAddCmd(a),
		newMoveCmd(a),
		newResetCmd(a),
		newPushCmd(a),
		newDeleteCmd(a),
		newHashPasswordCmd(),
	)
	return cmd
}

// client returns an API client, authenticated when requireToken is set
func (a *app) client(requireToken bool) (*carousel.Client, error) {
	var opts []carousel.ClientOption
	if a.ws.TokenValid(a.now()) {
		opts = append(opts, carousel.WithToken(a.ws.Token))
	} else if requireToken {
		return nil, errNotLoggedIn
	}
	return carousel.NewClient(a.ws.Server, opts...)
}

func (a *app) manager(saver carousel.Saver) *carousel.Manager {
	var opts []carousel.ManagerOption
	if a.maxImageSize > 0 {
		opts = append(opts, carousel.WithMaxImageSize(a.maxImageSize))
	}
	opts = append(opts, carousel.WithMaxBatchImages(a.maxNewImages))
	return carousel.RestoreManager(a.ws, saver, opts...)
}

// persist writes the manager's state back to the workspace file
func (a *app) persist(m *carousel.Manager) error {
	if m != nil {
		m.Export(a.ws)
	}
	if err := a.ws.Save(a.workspacePath); err != nil {
		return err
	}
	a.log.Debug("Workspace saved", zap.String("path", a.workspacePath))
	return nil
}
