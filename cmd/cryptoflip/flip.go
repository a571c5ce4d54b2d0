package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anderwick/cryptoflip/pkg/flip"
)

var (
	flipEncPassphrase string
	flipEncMarker     string
	flipEncGarbage    bool
	flipEncOutDir     string

	flipDecPassphrase string
	flipDecMarker     string
	flipDecOutDir     string
)

var flipEncryptCmd = &cobra.Command{
	Use:   "flip-encrypt",
	Short: "Split stdin into the three flip-protocol channels",
	Long: `Encrypt stdin under the flip protocol and write its three channels
as separate files under --out-dir: cipher_data, session_data, and
instant_key. Each is meant for an independent transport — never send
all three over the same channel.`,
	Example: `  cryptoflip flip-encrypt --passphrase "correct horse battery staple" --out-dir /tmp/flip < message.txt`,
	RunE:    runFlipEncrypt,
}

var flipDecryptCmd = &cobra.Command{
	Use:   "flip-decrypt",
	Short: "Recombine the three flip-protocol channels into plaintext",
	Long: `Read cipher_data, session_data, and instant_key back from --out-dir
(as written by flip-encrypt) and recover the original plaintext to
stdout.`,
	Example: `  cryptoflip flip-decrypt --passphrase "correct horse battery staple" --out-dir /tmp/flip > message.txt`,
	RunE:    runFlipDecrypt,
}

func init() {
	rootCmd.AddCommand(flipEncryptCmd)
	rootCmd.AddCommand(flipDecryptCmd)

	flipEncryptCmd.Flags().StringVarP(&flipEncPassphrase, "passphrase", "p", "", "Passphrase protecting session_data (required)")
	flipEncryptCmd.Flags().StringVarP(&flipEncMarker, "marker", "m", "", "Additional authenticated data")
	flipEncryptCmd.Flags().BoolVarP(&flipEncGarbage, "garbage", "g", true, "Pad cipher_data with random garbage")
	flipEncryptCmd.Flags().StringVarP(&flipEncOutDir, "out-dir", "o", ".", "Directory to write cipher_data, session_data, instant_key into")
	flipEncryptCmd.MarkFlagRequired("passphrase")

	flipDecryptCmd.Flags().StringVarP(&flipDecPassphrase, "passphrase", "p", "", "Passphrase protecting session_data (required)")
	flipDecryptCmd.Flags().StringVarP(&flipDecMarker, "marker", "m", "", "Additional authenticated data (must match the value used to encrypt)")
	flipDecryptCmd.Flags().StringVarP(&flipDecOutDir, "out-dir", "o", ".", "Directory to read cipher_data, session_data, instant_key from")
	flipDecryptCmd.MarkFlagRequired("passphrase")
}

func runFlipEncrypt(cmd *cobra.Command, args []string) error {
	plaintext, err := readAllStdin()
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	cipherData, sessionData, instantKey, err := flip.Encrypt(plaintext, flipEncPassphrase, []byte(flipEncMarker), flipEncGarbage)
	if err != nil {
		return fmt.Errorf("failed to flip-encrypt: %w", err)
	}

	if err := os.MkdirAll(flipEncOutDir, 0700); err != nil {
		return fmt.Errorf("failed to create --out-dir: %w", err)
	}
	if err := writeChannelFile(flipEncOutDir, "cipher_data", cipherData); err != nil {
		return err
	}
	if err := writeChannelFile(flipEncOutDir, "session_data", sessionData); err != nil {
		return err
	}
	if err := writeChannelFile(flipEncOutDir, "instant_key", instantKey); err != nil {
		return err
	}

	fmt.Printf("wrote cipher_data, session_data, instant_key to %s\n", flipEncOutDir)
	return nil
}

func runFlipDecrypt(cmd *cobra.Command, args []string) error {
	cipherData, err := readChannelFile(flipDecOutDir, "cipher_data")
	if err != nil {
		return err
	}
	sessionData, err := readChannelFile(flipDecOutDir, "session_data")
	if err != nil {
		return err
	}
	instantKey, err := readChannelFile(flipDecOutDir, "instant_key")
	if err != nil {
		return err
	}

	plaintext, err := flip.Decrypt(cipherData, flipDecPassphrase, sessionData, []byte(flipDecMarker), instantKey)
	if err != nil {
		return fmt.Errorf("failed to flip-decrypt: %w", err)
	}

	_, err = os.Stdout.Write(plaintext)
	return err
}

func writeChannelFile(dir, name string, data []byte) error {
	path := dir + string(os.PathSeparator) + name
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func readChannelFile(dir, name string) ([]byte, error) {
	path := dir + string(os.PathSeparator) + name
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}
