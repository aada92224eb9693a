// Command chartseed publishes a growth reference dataset to PostgreSQL
// and/or S3 so servers can load it with REFERENCE_SOURCE=postgres or s3.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/RMahshie/sonoreport/internal/config"
	"github.com/RMahshie/sonoreport/internal/growth"
	"github.com/RMahshie/sonoreport/internal/reference"
	"github.com/RMahshie/sonoreport/internal/repository"
	"github.com/RMahshie/sonoreport/internal/repository/postgres"
	"github.com/RMahshie/sonoreport/internal/storage"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := &cobra.Command{
		Use:   "chartseed",
		Short: "Manage growth reference datasets",
	}

	rootCmd.AddCommand(publishCmd())
	rootCmd.AddCommand(versionsCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(urlCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func publishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a reference dataset to postgres and/or S3",
		RunE: func(cmd *cobra.Command, args []string) error {
			toPostgres, _ := cmd.Flags().GetBool("postgres")
			s3Key, _ := cmd.Flags().GetString("s3-key")
			file, _ := cmd.Flags().GetString("file")
			if !toPostgres && s3Key == "" {
				return fmt.Errorf("select at least one target with --postgres or --s3-key")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			store := growth.Intergrowth21st()
			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", file, err)
				}
				if store, err = reference.Decode(data); err != nil {
					return err
				}
			}

			var charts repository.ChartRepository
			if toPostgres {
				db, err := openDB(cfg.Database.URL)
				if err != nil {
					return err
				}
				defer db.Close()
				charts = postgres.NewPostgresChartRepository(db)
			}

			var objects storage.S3Service
			if s3Key != "" {
				objects, err = newS3Service(cfg)
				if err != nil {
					return err
				}
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			return reference.NewLoader(charts, objects).Publish(ctx, store, reference.Target{
				Postgres:  toPostgres,
				ObjectKey: s3Key,
			})
		},
	}

	cmd.Flags().Bool("postgres", false, "Save charts to the reference_charts table")
	cmd.Flags().String("s3-key", "", "Upload the dataset as a JSON document under this key")
	cmd.Flags().String("file", "", "Publish a reference JSON document instead of the built-in INTERGROWTH-21st charts")
	return cmd
}

func versionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List reference dataset versions stored in postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := openDB(cfg.Database.URL)
			if err != nil {
				return err
			}
			defer db.Close()

			versions, err := postgres.NewPostgresChartRepository(db).ListVersions(cmd.Context())
			if err != nil {
				return err
			}
			for _, v := range versions {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}
}

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a published reference document from S3",
		RunE: func(cmd *cobra.Command, args []string) error {
			s3Key, _ := cmd.Flags().GetString("s3-key")
			loader, err := objectLoader()
			if err != nil {
				return err
			}
			return loader.Withdraw(cmd.Context(), s3Key)
		},
	}

	cmd.Flags().String("s3-key", "", "Key of the reference document to delete")
	_ = cmd.MarkFlagRequired("s3-key")
	return cmd
}

func urlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "url",
		Short: "Print a temporary download URL for a published reference document",
		RunE: func(cmd *cobra.Command, args []string) error {
			s3Key, _ := cmd.Flags().GetString("s3-key")
			loader, err := objectLoader()
			if err != nil {
				return err
			}
			url, err := loader.ShareURL(cmd.Context(), s3Key)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}

	cmd.Flags().String("s3-key", "", "Key of the reference document")
	_ = cmd.MarkFlagRequired("s3-key")
	return cmd
}

// objectLoader builds a loader backed only by object storage
func objectLoader() (*reference.Loader, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	objects, err := newS3Service(cfg)
	if err != nil {
		return nil, err
	}
	return reference.NewLoader(nil, objects), nil
}

func newS3Service(cfg *config.Config) (storage.S3Service, error) {
	return storage.NewS3Service(storage.S3Config{
		Bucket:    cfg.AWS.S3Bucket,
		Endpoint:  cfg.AWS.S3Endpoint,
		Region:    cfg.AWS.Region,
		AccessKey: cfg.AWS.AccessKeyID,
		SecretKey: cfg.AWS.SecretAccessKey,
	})
}

func openDB(url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
