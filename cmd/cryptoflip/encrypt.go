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
	encryptKeyHex string
	encryptMarker string
	encryptFile   string
	encryptOutput string
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt a blob or a file in place",
	Long: `Encrypt data under a 32-byte (hex-encoded) AES-256 key.

Without --file, plaintext is read from stdin and a self-contained blob
(nonce || ciphertext || tag) is written to stdout or --output.

With --file, the named file is encrypted in place — its size never
changes — and the authentication tag is printed to stdout; keep it, it
is required to decrypt.`,
	Example: `  # Encrypt stdin into a blob
  cryptoflip encrypt --key a1b2... < message.txt > message.enc

  # Encrypt a file in place
  cryptoflip encrypt --key a1b2... --file report.pdf`,
	RunE: runEncrypt,
}

func init() {
	rootCmd.AddCommand(encryptCmd)

	encryptCmd.Flags().StringVarP(&encryptKeyHex, "key", "k", "", "Hex-encoded 32-byte AES-256 key (required)")
	encryptCmd.Flags().StringVarP(&encryptMarker, "marker", "m", "", "Additional authenticated data")
	encryptCmd.Flags().StringVarP(&encryptFile, "file", "f", "", "Encrypt this file in place instead of reading stdin")
	encryptCmd.Flags().StringVarP(&encryptOutput, "output", "o", "", "Output file for blob mode (default: stdout)")
	encryptCmd.MarkFlagRequired("key")
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	key, err := hex.DecodeString(encryptKeyHex)
	if err != nil {
		return fmt.Errorf("invalid --key: %w", err)
	}
	marker := []byte(encryptMarker)

	if encryptFile != "" {
		tag, err := aead.EncryptFile(encryptFile, key, marker)
		if err != nil {
			return fmt.Errorf("failed to encrypt file: %w", err)
		}
		fmt.Printf("tag: %s\n", hex.EncodeToString(tag[:]))
		return nil
	}

	plaintext, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	blob, err := aead.Encrypt(plaintext, key, marker)
	if err != nil {
		return fmt.Errorf("failed to encrypt: %w", err)
	}

	return writeBlob(blob)
}

func writeBlob(blob []byte) error {
	if encryptOutput == "" {
		_, err := os.Stdout.Write(blob)
		return err
	}
	return os.WriteFile(encryptOutput, blob, 0600)
}
