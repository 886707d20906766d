package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Mshel/ssh2048/internal/game"
	"github.com/Mshel/ssh2048/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/urfave/cli/v3"
)

const (
	defaultAddress  = "0.0.0.0:6996"
	shutdownTimeout = 30 * time.Second

	defaultMaxConnectionsPerIP = 2
)

func newServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the game over SSH",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Value:   defaultAddress,
				Usage:   "address to listen on",
				Sources: cli.EnvVars("SSH2048_ADDR"),
			},
			&cli.StringFlag{
				Name:    "host-key",
				Value:   ".ssh/id_ed25519",
				Usage:   "host key path, generated when missing",
				Sources: cli.EnvVars("SSH2048_HOST_KEY_PATH"),
			},
			&cli.StringFlag{
				Name:    "max-connections-per-ip",
				Value:   fmt.Sprint(defaultMaxConnectionsPerIP),
				Sources: cli.EnvVars("SSH2048_MAX_CONNECTIONS_PER_IP"),
			},
			&cli.StringFlag{
				Name:    "hint",
				Value:   game.DefaultStrategyName,
				Usage:   "strategy behind the ? key, empty to disable",
				Sources: cli.EnvVars("SSH2048_HINT_STRATEGY"),
			},
		},
		Action: runServer,
	}
}

// connectionLimiter caps concurrent sessions per remote IP.
type connectionLimiter struct {
	mu     sync.Mutex
	counts map[string]int
	limit  int
}

func newConnectionLimiter(limit int) *connectionLimiter {
	return &connectionLimiter{counts: make(map[string]int), limit: limit}
}

// acquire takes a slot for ip and reports the count it saw before.
func (l *connectionLimiter) acquire(ip string) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	current := l.counts[ip]
	if current >= l.limit {
		return current, false
	}
	l.counts[ip]++
	return current, true
}

func (l *connectionLimiter) release(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[ip]--
	if l.counts[ip] <= 0 {
		delete(l.counts, ip)
	}
}

func (l *connectionLimiter) count(ip string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[ip]
}

func (l *connectionLimiter) Middleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		ip := remoteIP(s.RemoteAddr())

		current, ok := l.acquire(ip)
		if !ok {
			log.Warn("Connection denied: IP limit exceeded", "ip", ip, "attempted_count", current+1, "current_limit", l.limit)
			wish.Printf(s, "Too many active connections from your IP (%d/%d). Please try again later.\r\n", current+1, l.limit)
			_ = s.Exit(1)
			return
		}
		defer func() {
			l.release(ip)
			log.Info("Connection closed", "ip", ip, "count_after", l.count(ip))
		}()

		log.Info("Connection accepted", "ip", ip, "current_count", current+1, "limit", l.limit)
		next(s)
	}
}

func remoteIP(addr net.Addr) string {
	if tcpAddr, ok := addr.(*net.TCPAddr); ok {
		return tcpAddr.IP.String()
	}
	return addr.String()
}

func runServer(ctx context.Context, cmd *cli.Command) error {
	maxConnections, err := intFlag(cmd, "max-connections-per-ip")
	if err != nil {
		return err
	}
	options, closeScores, err := controllerOptions(cmd)
	if err != nil {
		return err
	}
	defer closeScores()

	limiter := newConnectionLimiter(maxConnections)
	address := cmd.String("addr")

	sshServer, err := wish.NewServer(
		wish.WithAddress(address),
		wish.WithHostKeyPath(cmd.String("host-key")),
		wish.WithMiddleware(
			bubbletea.Middleware(viewHandler(options)),
			logging.Middleware(),
			activeterm.Middleware(),
			limiter.Middleware,
		),
	)
	if err != nil {
		return fmt.Errorf("could not create ssh server: %w", err)
	}

	serverDoneChannel := make(chan os.Signal, 1)
	signal.Notify(serverDoneChannel, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	log.Info("Starting SSH server", "address", address, "size", options.GridSize)

	serveErr := make(chan error, 1)
	go func() {
		if err := sshServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-serverDoneChannel:
	case <-ctx.Done():
	case err := <-serveErr:
		return fmt.Errorf("could not start server: %w", err)
	}

	log.Info("Stopping SSH server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := sshServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("could not stop server: %w", err)
	}
	return nil
}

func viewHandler(options ui.Options) bubbletea.Handler {
	return func(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := sshSession.Pty()
		controllerModel := ui.NewControllerModel(options, pty.Window.Width, pty.Window.Height)
		return controllerModel, []tea.ProgramOption{tea.WithAltScreen()}
	}
}
