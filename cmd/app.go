package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/paanihub/paanictl/internal/api"
	"github.com/paanihub/paanictl/internal/flows"
	"github.com/paanihub/paanictl/internal/geo"
	"github.com/paanihub/paanictl/internal/models"
	"github.com/paanihub/paanictl/internal/state"
	"github.com/paanihub/paanictl/internal/stream"
	"github.com/paanihub/paanictl/internal/telemetry"
)

// app bundles the pieces every command needs: config, the HTTP client
// with its cookie session, the state objects and the telemetry recorder.
type app struct {
	cfg      *models.Config
	api      *api.Client
	session  *state.Session
	profile  *state.Profile
	geocoder *geo.Geocoder
	rec      *telemetry.Recorder
}

func newApp() (*app, error) {
	cfg, err := models.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}

	client, err := api.New(cfg.BackendURL, cfg.RequestTimeout, log)
	if err != nil {
		return nil, err
	}

	var rec *telemetry.Recorder
	if cfg.Telemetry.Enabled {
		sink, err := telemetry.NewSink(cfg.Telemetry, log)
		if err != nil {
			return nil, fmt.Errorf("initializing telemetry: %w", err)
		}
		rec = telemetry.NewRecorder(sink, log)
	}

	return &app{
		cfg:      cfg,
		api:      client,
		session:  state.NewSession(client, log),
		profile:  state.NewProfile(client, log),
		geocoder: geo.NewGeocoder(cfg.MapsAPIKey),
		rec:      rec,
	}, nil
}

func (a *app) Close() {
	if err := a.rec.Close(); err != nil {
		log.WithError(err).Warn("closing telemetry")
	}
}

// requireAuth resolves the session and loads the profile, failing the
// command when the backend does not recognize the stored session.
func (a *app) requireAuth(ctx context.Context) error {
	a.session.Check(ctx)
	if state.Guard(a.session.Checking(), a.session.Authenticated()) != state.Allow {
		return fmt.Errorf("not signed in, run 'paanictl auth login' first")
	}
	if err := a.profile.Sync(ctx, true); err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}
	return nil
}

// openChannel dials the live request channel.
func (a *app) openChannel(ctx context.Context) (flows.LiveChannel, error) {
	return stream.Dial(ctx, a.cfg.SocketURL, log)
}

// confirm asks on the terminal before a destructive step.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// prompt reads one line of input with a label.
func prompt(label string) string {
	fmt.Printf("%s: ", label)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
