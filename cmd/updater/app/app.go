package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ArtemKolodko/band-oracle-updater/internal/metric"
	"github.com/ArtemKolodko/band-oracle-updater/internal/zerolog"
	"github.com/ArtemKolodko/band-oracle-updater/pkg/api"
	"github.com/ArtemKolodko/band-oracle-updater/pkg/common/contracts/ethereum"
	"github.com/ArtemKolodko/band-oracle-updater/pkg/common/crypto/signer"
	"github.com/ArtemKolodko/band-oracle-updater/pkg/config"
	"github.com/ArtemKolodko/band-oracle-updater/pkg/updater"
)

const shutdownTimeout = 5 * time.Second

// Options are the command line values that override the config file
type Options struct {
	ConfigPath     string
	EnvFile        string
	SigningKeyPriv string
	SigningKeyPath string
	Password       string
	Debug          bool
}

// App holds all the dependencies
type App struct {
	ctx  context.Context
	opts *Options

	cfg     *config.Config
	signer  signer.Signer
	targets []common.Address

	chainClient  *ethereum.ChainClient
	executor     *updater.Executor
	scheduler    *updater.Scheduler
	metricServer *metric.Server
	apiServer    *api.Server
}

// New creates a new application instance. ctx ends the update loop when cancelled.
func New(ctx context.Context, opts *Options) *App {
	if opts == nil {
		opts = &Options{}
	}
	return &App{
		ctx:  ctx,
		opts: opts,
	}
}

// Init loads and validates the configuration and builds every component.
// Nothing is sent to the chain here; any error is a startup failure.
func (a *App) Init() error {
	if err := a.initConfig(); err != nil {
		return err
	}

	if err := a.initLogger(); err != nil {
		return err
	}

	if err := a.cfg.Validate(); err != nil {
		metric.RecordError("config_invalid")
		return err
	}

	if err := a.initSigner(); err != nil {
		return err
	}
	log.Info().
		Str("address", a.signer.GetSigningAddress().Hex()).
		Msgf("Bot started with address %s", a.signer.GetSigningAddress().Hex())

	if err := a.initChainClient(); err != nil {
		return err
	}

	if err := a.initUpdater(); err != nil {
		return err
	}

	a.initAPI()
	a.initMetrics()
	return nil
}

// Run serves the status API and metrics and blocks in the update loop until ctx is cancelled
func (a *App) Run() error {
	if a.scheduler == nil {
		return errors.New("app is not initialized")
	}

	g, ctx := errgroup.WithContext(a.ctx)

	// the servers are auxiliary: a failed listener is logged and the update loop keeps going
	g.Go(func() error {
		a.serve("metric server", a.metricServer.Start)
		return nil
	})
	g.Go(func() error {
		a.serve("API server", a.apiServer.Start)
		return nil
	})
	g.Go(func() error {
		defer a.Shutdown()
		return a.scheduler.Run(ctx)
	})

	return g.Wait()
}

func (a *App) serve(name string, start func() error) {
	if err := start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		metric.RecordError("server_start_failed")
		log.Error().Err(err).Str("server", name).Msg("Failed to start server")
	}
}

// Shutdown stops the servers and closes the chain client
func (a *App) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if a.apiServer != nil {
		if err := a.apiServer.Stop(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to stop API server")
		}
	}
	if a.metricServer != nil {
		if err := a.metricServer.Stop(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to stop metric server")
		}
	}
	if a.chainClient != nil {
		if err := a.chainClient.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close chain client")
		}
	}
}

// initConfig loads application configuration and applies command line overrides
func (a *App) initConfig() error {
	envFile, required := a.opts.EnvFile, true
	if envFile == "" {
		envFile, required = config.DefaultEnvFile, false
	}
	if err := config.LoadEnvFile(envFile, required); err != nil {
		metric.RecordError("config_load_failed")
		return err
	}

	cfg, err := config.LoadConfig(a.opts.ConfigPath)
	if err != nil {
		metric.RecordError("config_load_failed")
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch {
	case a.opts.SigningKeyPath != "":
		cfg.KeystorePath = a.opts.SigningKeyPath
		cfg.KeystorePassword = a.opts.Password
		cfg.PrivateKey = ""
	case a.opts.SigningKeyPriv != "":
		cfg.PrivateKey = a.opts.SigningKeyPriv
		cfg.KeystorePath = ""
	}
	if a.opts.Debug {
		cfg.Logging.Level = "debug"
	}

	a.cfg = cfg
	return nil
}

func (a *App) initLogger() error {
	if err := zerolog.InitLogger(a.cfg.Logging.Level, a.cfg.Logging.Format); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	return nil
}

// initSigner initializes the signing service
func (a *App) initSigner() error {
	var err error
	a.signer, err = signer.NewLocalSigner(a.cfg.SignerConfig())
	if err != nil {
		metric.RecordError("signer_init_failed")
		return fmt.Errorf("failed to init wallet: %w", err)
	}
	return nil
}

// initChainClient sets up the RPC connection; HTTP endpoints are dialled lazily
func (a *App) initChainClient() error {
	var err error
	a.chainClient, err = ethereum.NewChainClient(&ethereum.Config{
		RPCEndpoint: a.cfg.RPCURL,
		ChainID:     a.cfg.ChainIDBig(),
	}, a.signer)
	if err != nil {
		metric.RecordError("chain_client_init_failed")
		return fmt.Errorf("failed to create chain client: %w", err)
	}
	return nil
}

// initUpdater wires the executor and scheduler. Targets are re-read from the
// config at the start of every cycle.
func (a *App) initUpdater() error {
	var err error
	a.targets, err = a.cfg.Targets()
	if err != nil {
		return fmt.Errorf("failed to parse targets: %w", err)
	}

	a.executor, err = updater.NewExecutor(a.chainClient, a.signer.GetSigningAddress(), a.cfg.CallTimeout)
	if err != nil {
		return fmt.Errorf("failed to create executor: %w", err)
	}

	source := updater.TargetSourceFunc(func(context.Context) ([]common.Address, error) {
		return a.cfg.Targets()
	})
	a.scheduler, err = updater.NewScheduler(source, a.executor, a.cfg.UpdateInterval())
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	return nil
}

func (a *App) initAPI() {
	handler := api.NewHandler(a.scheduler, &api.Config{
		Name:      a.cfg.Name,
		Signer:    a.signer.GetSigningAddress(),
		Contracts: a.targets,
	})
	a.apiServer = api.NewServer(handler, a.cfg.HTTP.Host, a.cfg.HTTP.Port)
}

// initMetrics prepares the metrics server; it starts listening in Run
func (a *App) initMetrics() {
	a.metricServer = metric.New(&metric.Config{
		Port: a.cfg.Metric.Port,
	})
}
