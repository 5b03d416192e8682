package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/majidmanzarpour/workspace-cli/internal/batch"
	"github.com/majidmanzarpour/workspace-cli/internal/di"
	"github.com/majidmanzarpour/workspace-cli/internal/logging"
)

var batchCmd = &cobra.Command{
	Use:   "batch <family> <file>",
	Short: "Execute up to 100 requests in one multipart exchange",
	Long: `Execute a batch of requests against a family's batch endpoint.
The file (or - for stdin) holds a JSON array of requests:

  [{"id": "1", "method": "GET", "path": "/gmail/v1/users/me/labels"},
   {"id": "2", "method": "DELETE", "path": "/gmail/v1/users/me/messages/xyz"}]

Responses are printed as a JSON array in the same shape, matched to
requests by id. A batch carries at most 100 requests.`,
	Args: cobra.ExactArgs(2),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	family, file := args[0], args[1]

	requests, err := readBatchFile(file)
	if err != nil {
		return err
	}

	container, err := di.NewContainer(findConfigFile())
	if err != nil {
		return err
	}
	defer func() {
		if err := container.Shutdown(); err != nil {
			log.Warn().Err(err).Msg("container shutdown failed")
		}
	}()

	batches, err := di.Invoke[*di.BatchService](container)
	if err != nil {
		return err
	}

	var client *batch.Client
	switch family {
	case "gmail":
		client = batches.Gmail
	case "drive":
		client = batches.Drive
	case "calendar":
		client = batches.Calendar
	case "chat":
		client = batches.Chat
	default:
		return fmt.Errorf("family %q has no batch endpoint", family)
	}

	tokens, err := di.Invoke[*di.TokenService](container)
	if err != nil {
		return err
	}

	logSvc, err := di.Invoke[*di.LoggerService](container)
	if err != nil {
		return err
	}

	ctx := logging.WithRequestID(logSvc.Logger.WithContext(cmd.Context()), "")

	token, err := tokens.Provider.AccessToken(ctx)
	if err != nil {
		return err
	}

	responses, err := client.Execute(ctx, requests, token)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(responses, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	return nil
}

func readBatchFile(path string) ([]batch.Request, error) {
	var reader io.Reader
	if path == "-" {
		reader = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open batch file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				log.Warn().Err(cerr).Msg("failed to close batch file")
			}
		}()
		reader = f
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var requests []batch.Request
	if err := json.Unmarshal(content, &requests); err != nil {
		return nil, fmt.Errorf("failed to parse batch file: %w", err)
	}

	return requests, nil
}
