package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-enigma/pkg/operator"
)

var (
	jsonOutput bool
	batchMode  bool
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt [text]",
	Short: "Encipher text",
	Long: `Enciphers the arguments, or standard input when none are given.

With --batch every input line is a separate message, each enciphered from
the key's start positions.`,
	RunE: runEncrypt,
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt [text]",
	Short: "Decipher text",
	Long: `Deciphers the arguments, or standard input when none are given. The
machine is reciprocal, so this is the same transformation as encrypt.`,
	RunE: runDecrypt,
}

func init() {
	for _, c := range []*cobra.Command{encryptCmd, decryptCmd} {
		c.Flags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
		c.Flags().BoolVar(&batchMode, "batch", false, "Treat each input line as its own message")
	}
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	return runCipher(cmd, args, operator.OpEncrypt)
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	return runCipher(cmd, args, operator.OpDecrypt)
}

func runCipher(cmd *cobra.Command, args []string, op string) error {
	clerk, err := operator.New(cfg.Machine,
		operator.WithLogger(logger),
		operator.WithMetrics(registry),
		operator.WithWorkers(cfg.Workers),
	)
	if err != nil {
		return err
	}

	messages, err := readMessages(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var results []operator.Result
	if batchMode && op == operator.OpEncrypt {
		results, err = clerk.EncryptBatch(ctx, messages)
		if err != nil {
			return err
		}
	} else {
		for _, msg := range messages {
			var res operator.Result
			if op == operator.OpEncrypt {
				res, err = clerk.Encrypt(ctx, msg)
			} else {
				res, err = clerk.Decrypt(ctx, msg)
			}
			if err != nil {
				return err
			}
			results = append(results, res)
		}
	}

	return printResults(cmd.OutOrStdout(), results)
}

// readMessages returns the joined arguments as one message, or standard
// input: one message per line with --batch, otherwise the whole input.
func readMessages(in io.Reader, args []string) ([]string, error) {
	if len(args) > 0 {
		return []string{strings.Join(args, " ")}, nil
	}

	if !batchMode {
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		return []string{strings.TrimRight(string(data), "\r\n")}, nil
	}

	var lines []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return lines, nil
}

func printResults(w io.Writer, results []operator.Result) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		for _, res := range results {
			if err := enc.Encode(res); err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
		}
		return nil
	}
	for _, res := range results {
		if _, err := fmt.Fprintln(w, res.Text); err != nil {
			return err
		}
	}
	return nil
}
