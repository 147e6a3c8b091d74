package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/sudatra/aora/internal/domain"
	"github.com/sudatra/aora/internal/tui"
	"github.com/sudatra/aora/internal/tui/styles"
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List video posts",
	Long: `List video posts, newest first.

Examples:
  aora posts
  aora posts --latest
  aora posts --search sunset
  aora posts --owner 01J9W3...`,
	RunE: withApp(runPosts),
}

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Publish a video post",
	Long: `Upload a thumbnail and a video and publish them as a post owned by
the signed-in profile.

Examples:
  aora upload --title "Neon city" --prompt "a city at night" --thumbnail thumb.png --video city.mp4`,
	RunE: withApp(runUpload),
}

var browseCmd = &cobra.Command{
	Use:   "browse [path]",
	Short: "Open the browser UI",
	Long: `Open the terminal browser. An optional path selects the first screen.

Examples:
  aora browse
  aora browse /search/sunset`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

var runBrowse = withApp(browse)

func init() {
	postsCmd.Flags().Bool("latest", false, "only the latest posts")
	postsCmd.Flags().String("owner", "", "posts created by a profile ID")
	postsCmd.Flags().String("search", "", "full-text search on titles")
	postsCmd.MarkFlagsMutuallyExclusive("latest", "owner", "search")

	uploadCmd.Flags().String("title", "", "post title")
	uploadCmd.Flags().String("prompt", "", "AI prompt used for the video")
	uploadCmd.Flags().String("thumbnail", "", "thumbnail image path")
	uploadCmd.Flags().String("video", "", "video file path")
	for _, name := range []string{"title", "prompt", "thumbnail", "video"} {
		_ = uploadCmd.MarkFlagRequired(name)
	}

	rootCmd.AddCommand(postsCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(browseCmd)
}

func runPosts(cmd *cobra.Command, args []string, a *app) error {
	latest, _ := cmd.Flags().GetBool("latest")
	owner, _ := cmd.Flags().GetString("owner")
	search, _ := cmd.Flags().GetString("search")

	ctx := context.Background()

	var posts []*domain.Post
	var err error
	switch {
	case latest:
		posts, err = a.backend.ListLatestPosts(ctx)
	case owner != "":
		posts, err = a.backend.ListPostsByOwner(ctx, owner)
	case search != "":
		posts, err = a.backend.SearchPosts(ctx, search)
		if err == nil {
			if herr := a.store.AddQuery(search); herr != nil {
				a.logger.Warn("failed to save search history", "error", herr)
			}
		}
	default:
		posts, err = a.backend.ListAllPosts(ctx)
	}
	if err != nil {
		return err
	}

	return printPosts(cmd.OutOrStdout(), posts)
}

func printPosts(out io.Writer, posts []*domain.Post) error {
	if len(posts) == 0 {
		fmt.Fprintln(out, "No videos found")
		return nil
	}

	w := newTable(out)
	fmt.Fprintln(w, "ID\tTITLE\tCREATOR\tCREATED")
	for _, p := range posts {
		creator := p.OwnerName()
		if creator == "" {
			creator = p.OwnerID
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			p.ID,
			styles.Truncate(p.Title, 40),
			creator,
			formatCreated(p.CreatedAt),
		)
	}
	return w.Flush()
}

func runUpload(cmd *cobra.Command, args []string, a *app) error {
	title, _ := cmd.Flags().GetString("title")
	prompt, _ := cmd.Flags().GetString("prompt")
	thumbnail, _ := cmd.Flags().GetString("thumbnail")
	video, _ := cmd.Flags().GetString("video")

	ctx := context.Background()

	profile, err := a.backend.GetCurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("sign in before uploading: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Uploading %s...\n", filepath.Base(video))

	post, err := a.backend.CreateVideoPost(ctx, domain.VideoForm{
		Title:     title,
		Prompt:    prompt,
		Thumbnail: localFile(thumbnail),
		Video:     localFile(video),
		OwnerID:   profile.ID,
	})
	if err != nil {
		return err
	}

	w := newTable(cmd.OutOrStdout())
	fmt.Fprintf(w, "ID\t%s\n", post.ID)
	fmt.Fprintf(w, "TITLE\t%s\n", post.Title)
	fmt.Fprintf(w, "VIDEO\t%s\n", post.VideoURL)
	fmt.Fprintf(w, "THUMBNAIL\t%s\n", post.ThumbnailURL)
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Video published")
	return nil
}

func browse(cmd *cobra.Command, args []string, a *app) error {
	opts := tui.Options{
		History:     a.store,
		Suggestions: a.cfg.UI.Suggestions,
		Logger:      a.logger,
	}
	if len(args) > 0 {
		opts.InitialPath = args[0]
	}

	p := tea.NewProgram(tui.NewModel(a.backend, opts), tea.WithAltScreen())

	a.logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// localFile describes a file on disk for upload
func localFile(path string) *domain.StoredFile {
	if path == "" {
		return nil
	}
	return &domain.StoredFile{Name: filepath.Base(path), SourceURI: path}
}

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

func formatCreated(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
