package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/wellkeep/internal/models"
)

var (
	memoryCaption string
	memoryPhoto   string
)

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Manage photo memories",
}

var memoryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a memory with a caption, a photo, or both",
	Long: `Add a memory entry. The photo is read from disk and uploaded
through the server.

Examples:
  wellkeep memory add --caption "First snow"
  wellkeep memory add --photo beach.jpg
  wellkeep memory add --caption "Picnic" --photo picnic.jpg`,
	RunE: runMemoryAdd,
}

var memoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all memories",
	RunE:  runMemoryList,
}

var memoryRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a memory and its photo",
	Args:  cobra.ExactArgs(1),
	RunE:  runMemoryRm,
}

func init() {
	memoryAddCmd.Flags().StringVarP(&memoryCaption, "caption", "c", "", "caption text")
	memoryAddCmd.Flags().StringVarP(&memoryPhoto, "photo", "p", "", "path to a photo file")

	memoryCmd.AddCommand(memoryAddCmd)
	memoryCmd.AddCommand(memoryListCmd)
	memoryCmd.AddCommand(memoryRmCmd)
}

// photoToDataURL reads a photo file and encodes it as a base64 data URL.
func photoToDataURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read photo: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if !strings.HasPrefix(contentType, "image/") {
		contentType = "image/jpeg"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func runMemoryAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	input := models.MemoryInput{Caption: memoryCaption}
	if memoryPhoto != "" {
		dataURL, err := photoToDataURL(memoryPhoto)
		if err != nil {
			return err
		}
		input.PhotoBase64 = dataURL
	}

	key, err := api.CreateMemory(ctx, input)
	if err != nil {
		return fmt.Errorf("add memory: %w", err)
	}

	fmt.Println(okStyle.Render("Added ") + key)
	return nil
}

func runMemoryList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	memories, err := api.ListMemories(ctx)
	if err != nil {
		return fmt.Errorf("list memories: %w", err)
	}

	if len(memories) == 0 {
		fmt.Println("No memories yet.")
		return nil
	}

	fmt.Println(headingStyle.Render(fmt.Sprintf("Memories (%d):", len(memories))))
	for _, memory := range memories {
		when := time.UnixMilli(memory.Timestamp).Format("2006-01-02 15:04")
		fmt.Printf("%s  %s  %s\n", dimStyle.Render(when), memory.Caption, dimStyle.Render(memory.ID))
		if memory.PhotoURL != "" {
			fmt.Println("        " + dimStyle.Render(memory.PhotoURL))
		}
	}
	return nil
}

func runMemoryRm(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if err := api.DeleteMemory(ctx, args[0]); err != nil {
		return fmt.Errorf("delete memory: %w", err)
	}

	fmt.Println("Deleted " + args[0])
	return nil
}
