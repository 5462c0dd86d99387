package cmd

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/noisysoil/repacker/archive"
	"github.com/noisysoil/repacker/repack"
)

// NewSeedCmd creates and returns the seed subcommand for the repacker CLI.
// It generates a sample source tree with a randomized mix of file kinds.
func NewSeedCmd() *cobra.Command {
	var (
		outputPath string
		fileCount  int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a sample source tree with a randomized layout",
		Long: `Generate a sample source tree for trying out the run command.

Creates a nested directory structure holding a mix of archive containers,
bare files with wrappable extensions, and plain files, so a run over the
tree exercises every treatment. Content lines are drawn from a small UUID
pool and a few files are left empty on purpose.`,
		Run: func(cmd *cobra.Command, args []string) {
			runSeed(outputPath, fileCount, verbose)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVarP(&fileCount, "count", "c", 1000, "Number of files to generate")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("output")

	return cmd
}

func runSeed(outputPath string, fileCount int, verbose bool) {
	log := newLogger("info", false)

	if verbose {
		fmt.Printf("Generating %d sample files in %s\n", fileCount, outputPath)
	}

	// Create output directory
	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		log.Fatal().Err(err).Msg("failed to create output directory")
	}

	// Generate pool of 50 UUIDs for file content
	uuidPool := make([]string, 50)
	for i := 0; i < 50; i++ {
		uuidPool[i] = uuid.New().String()
	}
	content := func() string {
		idx, _ := rand.Int(rand.Reader, big.NewInt(50))
		return uuidPool[idx.Int64()] + "\n"
	}
	segment := func() string {
		n, _ := rand.Int(rand.Reader, big.NewInt(16))
		return fmt.Sprintf("set-%02x", n.Int64())
	}

	filesCreated := 0
	dirFileCounts := make(map[string]int)
	kindCounts := make(map[string]int)

	for filesCreated < fileCount {
		// Determine directory depth (most files in nested directories)
		levelRand, _ := rand.Int(rand.Reader, big.NewInt(100))
		var dirPath string

		switch {
		case levelRand.Int64() < 15: // 15% at the root
			dirPath = outputPath
		case levelRand.Int64() < 45: // 30% one level down
			dirPath = filepath.Join(outputPath, segment())
		case levelRand.Int64() < 80: // 35% two levels down
			dirPath = filepath.Join(outputPath, segment(), segment())
		default: // 20% three levels down
			dirPath = filepath.Join(outputPath, segment(), segment(), segment())
		}

		// Check if directory has too many files
		if dirFileCounts[dirPath] >= 500 {
			continue // Try a different directory
		}

		// Create directory if it doesn't exist
		if err := os.MkdirAll(dirPath, 0o755); err != nil {
			log.Warn().Err(err).Str("path", dirPath).Msg("failed to create directory")
			continue
		}

		// Generate random filename (lowercase hex)
		filenameNum, _ := rand.Int(rand.Reader, big.NewInt(0xFFFFFFFF))
		stem := fmt.Sprintf("%08x", filenameNum.Int64())

		// Pick a file kind: containers, wrappable bare files, plain files
		kindRand, _ := rand.Int(rand.Reader, big.NewInt(100))
		var filePath, kind string
		var err error

		switch {
		case kindRand.Int64() < 35: // 35% archive containers
			kind = "container"
			filePath = filepath.Join(dirPath, stem+".zip")
			if _, statErr := os.Stat(filePath); statErr == nil {
				continue
			}
			members, _ := rand.Int(rand.Reader, big.NewInt(5))
			err = seedContainer(filePath, int(members.Int64())+1, content)
		case kindRand.Int64() < 65: // 30% bare files with wrappable extensions
			kind = "wrappable"
			exts := []string{".lnx", ".col", ".int"}
			extIdx, _ := rand.Int(rand.Reader, big.NewInt(int64(len(exts))))
			filePath = filepath.Join(dirPath, stem+exts[extIdx.Int64()])
			if _, statErr := os.Stat(filePath); statErr == nil {
				continue
			}
			data := content()
			if emptyRand, _ := rand.Int(rand.Reader, big.NewInt(10)); emptyRand.Int64() == 0 {
				data = "" // leave roughly one in ten empty
			}
			err = os.WriteFile(filePath, []byte(data), 0o644)
		default: // 35% plain files that are copied verbatim
			kind = "plain"
			exts := []string{".txt", ".json"}
			extIdx, _ := rand.Int(rand.Reader, big.NewInt(int64(len(exts))))
			filePath = filepath.Join(dirPath, stem+exts[extIdx.Int64()])
			if _, statErr := os.Stat(filePath); statErr == nil {
				continue
			}
			err = os.WriteFile(filePath, []byte(content()), 0o644)
		}
		if err != nil {
			log.Warn().Err(err).Str("path", filePath).Msg("failed to write sample file")
			continue
		}

		dirFileCounts[dirPath]++
		kindCounts[kind]++
		filesCreated++

		if verbose && filesCreated%1000 == 0 {
			fmt.Printf("Created %d/%d files...\n", filesCreated, fileCount)
		}
	}

	if verbose {
		fmt.Printf("Successfully created %d files\n", filesCreated)
		fmt.Printf("Files distributed across %d directories\n", len(dirFileCounts))
		fmt.Printf("File kinds: %d containers, %d wrappable, %d plain\n",
			kindCounts["container"], kindCounts["wrappable"], kindCounts["plain"])

		// Show some statistics
		maxFiles := 0
		minFiles := fileCount
		for _, count := range dirFileCounts {
			if count > maxFiles {
				maxFiles = count
			}
			if count < minFiles {
				minFiles = count
			}
		}
		fmt.Printf("Directory file counts: min=%d, max=%d\n", minFiles, maxFiles)
	}
}

// seedContainer writes a small normalized container with the given number
// of text members.
func seedContainer(path string, members int, content func() string) error {
	w, err := archive.Create(path, repack.DefaultLevel)
	if err != nil {
		return err
	}
	for i := 0; i < members; i++ {
		data := []byte(content())
		entry := archive.Entry{
			Name: fmt.Sprintf("part-%02d.txt", i),
			Size: uint64(len(data)),
			Open: func() (io.ReadCloser, error) {
				return io.NopCloser(bytes.NewReader(data)), nil
			},
		}
		if err := w.Append(entry); err != nil {
			w.Discard()
			return err
		}
	}
	return w.Close()
}
