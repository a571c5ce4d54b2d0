package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/anderwick/cryptoflip/pkg/aead"
)

var (
	decryptKeyHex string
	decryptMarker string
	decryptFile   string
	decryptTagHex string
	decryptOutput string
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt a blob or a file in place",
	Long: `Decrypt data under a 32-byte (hex-encoded) AES-256 key.

Without --file, a self-contained blob is read from stdin and plaintext
is written to stdout or --output.

With --file, the named file is decrypted in place using the tag from
--tag (the one EncryptFile printed).`,
	Example: `  # Decrypt a blob from stdin
  cryptoflip decrypt --key a1b2... < message.enc > message.txt

  # Decrypt a file in place
  cryptoflip decrypt --key a1b2... --file report.pdf --tag 9f8e...`,
	RunE: runDecrypt,
}

func init() {
	rootCmd.AddCommand(decryptCmd)

	decryptCmd.Flags().StringVarP(&decryptKeyHex, "key", "k", "", "Hex-encoded 32-byte AES-256 key (required)")
	decryptCmd.Flags().StringVarP(&decryptMarker, "marker", "m", "", "Additional authenticated data (must match the value used to encrypt)")
	decryptCmd.Flags().StringVarP(&decryptFile, "file", "f", "", "Decrypt this file in place instead of reading stdin")
	decryptCmd.Flags().StringVarP(&decryptTagHex, "tag", "t", "", "Hex-encoded authentication tag (required with --file)")
	decryptCmd.Flags().StringVarP(&decryptOutput, "output", "o", "", "Output file for blob mode (default: stdout)")
	decryptCmd.MarkFlagRequired("key")
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	key, err := hex.DecodeString(decryptKeyHex)
	if err != nil {
		return fmt.Errorf("invalid --key: %w", err)
	}
	marker := []byte(decryptMarker)

	if decryptFile != "" {
		tagBytes, err := hex.DecodeString(decryptTagHex)
		if err != nil || len(tagBytes) != 16 {
			return fmt.Errorf("--tag must be a 16-byte hex-encoded authentication tag")
		}
		var tag [16]byte
		copy(tag[:], tagBytes)

		if err := aead.DecryptFile(decryptFile, key, tag, marker); err != nil {
			return fmt.Errorf("failed to decrypt file: %w", err)
		}
		fmt.Println("decrypted in place")
		return nil
	}

	blob, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	plaintext, err := aead.Decrypt(blob, key, marker)
	if err != nil {
		return fmt.Errorf("failed to decrypt: %w", err)
	}

	if decryptOutput == "" {
		_, err := os.Stdout.Write(plaintext)
		return err
	}
	return os.WriteFile(decryptOutput, plaintext, 0600)
}
