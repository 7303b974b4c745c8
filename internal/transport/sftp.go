package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/mydehq/subrename/internal/types"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

const (
	schemeSFTP        = "sftp"
	posixRenameExt    = "posix-rename@openssh.com"
	defaultSSHTimeout = 15 * time.Second
)

func init() {
	Register(sftpFactory{})
}

type sftpFactory struct{}

func (sftpFactory) Name() string { return schemeSFTP }

func (sftpFactory) MatchesTarget(raw string) bool {
	return hasScheme(raw, schemeSFTP) || hasScheme(raw, "ssh")
}

func (sftpFactory) Open(ctx context.Context, target Target) (Transport, error) {
	return Dial(ctx, target.Remote)
}

// SFTP accesses a remote directory over an authenticated SSH session.
type SFTP struct {
	client  *sftp.Client
	closers []io.Closer
}

// NewSFTP wraps an existing SFTP client. Closing the transport closes the
// client and then each of closers.
func NewSFTP(client *sftp.Client, closers ...io.Closer) *SFTP {
	return &SFTP{client: client, closers: closers}
}

// Dial connects and authenticates to the server described by cfg and opens
// an SFTP session. Authentication uses the key file when set, then the
// password, then the SSH agent.
func Dial(ctx context.Context, cfg types.RemoteConfig) (*SFTP, error) {
	addr := cfg.Address()
	if cfg.User == "" {
		return nil, types.ErrMissingUser{Host: addr}
	}

	auth, agentConn, err := authMethod(cfg)
	if err != nil {
		return nil, types.ErrTransport{Op: "ssh auth", Path: addr, Err: err}
	}
	closeAgent := func() {
		if agentConn != nil {
			_ = agentConn.Close()
		}
	}

	hostKeys, err := hostKeyCallback(cfg)
	if err != nil {
		closeAgent()
		return nil, types.ErrTransport{Op: "ssh host keys", Path: addr, Err: err}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultSSHTimeout
	}

	conn, err := DialWithRetry(ctx, addr, timeout, cfg.DialRetries)
	if err != nil {
		closeAgent()
		return nil, types.ErrTransport{Op: "dial", Path: addr, Err: err}
	}

	// Bound the handshake; the deadline is cleared once the session is up.
	_ = conn.SetDeadline(time.Now().Add(timeout))
	c, chans, reqs, err := ssh.NewClientConn(conn, addr, &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            []ssh.AuthMethod{auth},
		HostKeyCallback: hostKeys,
		Timeout:         timeout,
	})
	if err != nil {
		_ = conn.Close()
		closeAgent()
		return nil, types.ErrTransport{Op: "ssh handshake", Path: addr, Err: err}
	}
	_ = conn.SetDeadline(time.Time{})

	sshClient := ssh.NewClient(c, chans, reqs)
	client, err := sftp.NewClient(sshClient)
	if err != nil {
		_ = sshClient.Close()
		closeAgent()
		return nil, types.ErrTransport{Op: "sftp session", Path: addr, Err: err}
	}

	closers := []io.Closer{sshClient}
	if agentConn != nil {
		closers = append(closers, agentConn)
	}
	return NewSFTP(client, closers...), nil
}

func (s *SFTP) Name() string { return schemeSFTP }

// List returns the entries of dir. Symbolic links count as files when
// they point at a regular file.
func (s *SFTP) List(dir string) ([]Entry, error) {
	infos, err := s.client.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(infos))
	for _, fi := range infos {
		isFile := fi.Mode().IsRegular()
		if fi.Mode()&os.ModeSymlink != 0 {
			if target, err := s.client.Stat(s.Join(dir, fi.Name())); err == nil {
				isFile = target.Mode().IsRegular()
			}
		}
		entries = append(entries, Entry{Name: fi.Name(), IsFile: isFile})
	}
	return entries, nil
}

// Rename uses the POSIX rename extension when the server offers it, so an
// existing target is replaced the same way a local rename would.
func (s *SFTP) Rename(oldPath, newPath string) error {
	if _, ok := s.client.HasExtension(posixRenameExt); ok {
		return s.client.PosixRename(oldPath, newPath)
	}
	return s.client.Rename(oldPath, newPath)
}

func (s *SFTP) ReadFile(p string, limit int64) ([]byte, error) {
	f, err := s.client.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, limit))
}

func (s *SFTP) Join(dir, name string) string {
	return path.Join(dir, name)
}

func (s *SFTP) Close() error {
	errs := []error{s.client.Close()}
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

func authMethod(cfg types.RemoteConfig) (ssh.AuthMethod, net.Conn, error) {
	if cfg.Key != "" {
		data, err := os.ReadFile(expandHome(cfg.Key))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read key: %w", err)
		}
		signer, err := ssh.ParsePrivateKey(data)
		var missing *ssh.PassphraseMissingError
		if errors.As(err, &missing) && cfg.Password != "" {
			signer, err = ssh.ParsePrivateKeyWithPassphrase(data, []byte(cfg.Password))
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse key %s: %w", cfg.Key, err)
		}
		return ssh.PublicKeys(signer), nil, nil
	}

	if cfg.Password != "" {
		return ssh.Password(cfg.Password), nil, nil
	}

	sock := os.Getenv("SSH_AUTH_SOCK")
	if sock == "" {
		return nil, nil, errors.New("no authentication method: set a key, a password or SSH_AUTH_SOCK")
	}
	conn, err := net.Dial("unix", sock)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reach ssh agent: %w", err)
	}
	return ssh.PublicKeysCallback(agent.NewClient(conn).Signers), conn, nil
}

func hostKeyCallback(cfg types.RemoteConfig) (ssh.HostKeyCallback, error) {
	if cfg.InsecureIgnoreHostKey {
		return ssh.InsecureIgnoreHostKey(), nil
	}
	file := expandHome(cfg.KnownHosts)
	if file == "" {
		return nil, errors.New("no known_hosts file configured (use --insecure to skip host key checks)")
	}
	cb, err := knownhosts.New(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s (use --insecure to skip host key checks): %w", file, err)
	}
	return cb, nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
