package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/travelmate/internal/flagx"
	"github.com/dmitrijs2005/travelmate/internal/timex"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   REST bind address (e.g., ":5000")
//	-m string   gRPC health bind address ("" disables)
//	-d string   PostgreSQL DSN or "memory"
//	-s string   JWT HMAC secret key
//	-t duration token lifetime ("168h", "7d")
//	-k int      bcrypt cost
//	-o string   allowed CORS origin
//	-l string   log level
//	-x string   storage backend ("local" or "s3")
//	-f string   local upload directory
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint
//
// os.Args is filtered with flagx.FilterArgs first so flags owned by other
// components (-c) do not break parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-m", "-d", "-s", "-t", "-k", "-o", "-l", "-x", "-f", "-u", "-p", "-b", "-g", "-e",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run REST API")
	fs.StringVar(&config.GRPCHealthAddr, "m", config.GRPCHealthAddr, "address and port of gRPC health service")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.Func("t", "token lifetime (e.g. 168h or 7d)", func(v string) error {
		d, err := timex.ParseDuration(v)
		if err != nil {
			return err
		}
		config.TokenLifetime = d
		return nil
	})
	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.ClientURL, "o", config.ClientURL, "allowed CORS origin")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.StorageBackend, "x", config.StorageBackend, "storage backend (local, s3)")
	fs.StringVar(&config.UploadDir, "f", config.UploadDir, "local upload directory")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
