package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anderwick/cryptoflip/pkg/kdf"
)

var (
	keygenPassphrase string
	keygenSalt       string
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Derive an AES-256 key from a passphrase",
	Long: `Derive an AES-256 key from a passphrase via PBKDF2-HMAC-SHA-512.

With no --salt, a fresh random salt is generated and printed alongside
the derived key; save it to re-derive the same key later. With --salt,
the same key is re-derived deterministically from the given salt.`,
	Example: `  # Derive a new key and salt
  cryptoflip keygen --passphrase "correct horse battery staple"

  # Re-derive the same key from a saved salt
  cryptoflip keygen --passphrase "correct horse battery staple" --salt a1b2c3...`,
	RunE: runKeygen,
}

func init() {
	rootCmd.AddCommand(keygenCmd)

	keygenCmd.Flags().StringVarP(&keygenPassphrase, "passphrase", "p", "", "Passphrase to derive the key from (required)")
	keygenCmd.Flags().StringVarP(&keygenSalt, "salt", "s", "", "Hex-encoded salt to re-derive a prior key (omit to generate a new one)")
	keygenCmd.MarkFlagRequired("passphrase")
}

func runKeygen(cmd *cobra.Command, args []string) error {
	if keygenSalt == "" {
		keyHex, salt, err := kdf.CreateSaltedKey(keygenPassphrase)
		if err != nil {
			return fmt.Errorf("failed to derive key: %w", err)
		}
		fmt.Printf("key:  %s\n", keyHex)
		fmt.Printf("salt: %s\n", hex.EncodeToString(salt[:]))
		return nil
	}

	keyHex, err := kdf.GetSaltedKey(keygenPassphrase, []byte(keygenSalt))
	if err != nil {
		return fmt.Errorf("failed to derive key: %w", err)
	}
	fmt.Printf("key: %s\n", keyHex)
	return nil
}
