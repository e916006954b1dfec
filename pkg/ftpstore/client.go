// Package ftpstore implements the remote asset store client. Product
// images are pushed to a fixed directory on an FTP server and the local
// staged copy is removed after every attempt, success or failure.
package ftpstore

import (
	"crypto/tls"
	"os"
	"path"
	"time"

	"github.com/RobertoSuarez97/almacenBackend/internal/apperr"
	"github.com/RobertoSuarez97/almacenBackend/pkg/config"
	"github.com/RobertoSuarez97/almacenBackend/prometheus"

	"github.com/jlaffaye/ftp"
	"go.uber.org/zap"
)

// RemoteDir is the fixed logical directory for product assets
const RemoteDir = "assets/productos"

// Client uploads files to the remote asset store. Each call opens and
// fully tears down its own connection; there is no shared session.
type Client struct {
	cfg *config.FTPConfig
	log *zap.Logger
}

// New creates a client bound to the given connection parameters
func New(cfg *config.FTPConfig, log *zap.Logger) *Client {
	return &Client{cfg: cfg, log: log}
}

// RemotePath returns the full remote path for a stored asset name
func RemotePath(remoteName string) string {
	return path.Join(RemoteDir, remoteName)
}

// Upload transfers the file at localPath to the remote store under
// remoteName. The local file is deleted afterwards regardless of the
// outcome so the staging area never leaks.
func (c *Client) Upload(localPath, remoteName string) (err error) {
	start := time.Now()
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = "failure"
		}
		prometheus.RecordFtpUpload(outcome, start)
	}()
	defer func() {
		if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
			c.log.Warn("No se pudo eliminar el archivo temporal",
				zap.String("local_path", localPath),
				zap.Error(err))
		}
	}()

	opts := []ftp.DialOption{ftp.DialWithTimeout(c.cfg.DialTimeout)}
	if c.cfg.Secure {
		opts = append(opts, ftp.DialWithExplicitTLS(&tls.Config{ServerName: c.cfg.Host}))
	}

	conn, err := ftp.Dial(c.cfg.Addr(), opts...)
	if err != nil {
		return apperr.Wrap(apperr.AssetTransfer, "Error de conexión con el servidor FTP", err)
	}
	defer conn.Quit()

	if err := conn.Login(c.cfg.User, c.cfg.Password); err != nil {
		return apperr.Wrap(apperr.AssetTransfer, "Error de autenticación con el servidor FTP", err)
	}

	file, err := os.Open(localPath)
	if err != nil {
		return apperr.Wrap(apperr.AssetTransfer, "No se pudo leer el archivo local", err)
	}
	defer file.Close()

	if err := conn.Stor(RemotePath(remoteName), file); err != nil {
		return apperr.Wrap(apperr.AssetTransfer, "Error al subir el archivo por FTP", err)
	}

	c.log.Info("Archivo subido a FTP correctamente",
		zap.String("remote_name", remoteName))
	return nil
}
