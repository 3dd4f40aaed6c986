package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	goplugin "github.com/hashicorp/go-plugin"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/apexmind/internal/coach"
	"github.com/felixgeelhaar/apexmind/internal/credential"
	"github.com/felixgeelhaar/apexmind/internal/observe"
	"github.com/felixgeelhaar/apexmind/internal/plugin"
	"github.com/felixgeelhaar/apexmind/internal/provider"
	"github.com/felixgeelhaar/apexmind/internal/scorer"
	"github.com/felixgeelhaar/apexmind/internal/store"
	"github.com/felixgeelhaar/apexmind/internal/ui"
	"github.com/felixgeelhaar/apexmind/internal/ui/tui"
)

var (
	verbose      bool
	providerType string
	modelName    string
	userID       string
	personaPath  string
	scorerPlugin string
	weight       float64
	ciMode       bool
	interactive  bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "apexmind",
	Short: "Competitive mindset coaching engine",
	Long: `ApexMind coaches a competitive mindset: every exchange is scored
across six traits, smoothed into a long-term profile, and distilled
into momentum, volatility, and active performance modes.`,
}

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Run one coaching turn",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runTurn(strings.Join(args, " "))
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.AddCommand(askCmd)
	RootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "default", "User profile to coach")
	askCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	askCmd.Flags().StringVarP(&providerType, "provider", "p", "gemini", "AI provider (gemini, openai, ollama)")
	askCmd.Flags().StringVarP(&modelName, "model", "m", "", "Model name (default depends on provider)")
	askCmd.Flags().StringVar(&personaPath, "persona", "", "Persona file (YAML or JSON)")
	askCmd.Flags().StringVar(&scorerPlugin, "scorer-plugin", "", "Path to an external scorer plugin binary")
	askCmd.Flags().Float64VarP(&weight, "weight", "w", coach.DefaultSmoothingWeight, "Smoothing weight for profile updates")
	askCmd.Flags().BoolVar(&ciMode, "ci", false, "JSON log output, non-interactive")
	askCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Start interactive TUI")
}

func runTurn(message string) {
	var obs *observe.Observer
	if ciMode {
		obs = observe.NewJSON(os.Stdout, verbose)
	} else {
		obs = observe.New(os.Stdout, verbose)
	}
	defer obs.Close()

	storeLayer := getStore()
	defer storeLayer.Close()

	p, err := buildProvider(storeLayer)
	if err != nil {
		obs.Log().Fatal().Err(err).Msg("Failed to initialize provider")
	}

	sc, closeScorer, err := buildScorer(p)
	if err != nil {
		obs.Log().Fatal().Err(err).Msg("Failed to initialize scorer")
	}
	defer closeScorer()

	runner := NewRunner(obs, storeLayer, p, sc, nil)
	runner.Weight = weight
	runner.PersonaPath = personaPath

	if interactive {
		model := tui.NewModel("ApexMind Coaching")
		program := tea.NewProgram(model)
		runner.UI = tui.NewTUI(program)

		go func() {
			_ = runner.Run(context.Background(), userID, message)
			program.Quit()
		}()

		if _, err := program.Run(); err != nil {
			fmt.Printf("Alas, there's been an error: %v", err)
			os.Exit(1)
		}
	} else {
		runner.UI = ui.SilentUI{}
		if err := runner.Run(context.Background(), userID, message); err != nil {
			os.Exit(1)
		}
	}
}

// buildScorer returns the in-process LLM scorer unless an external
// plugin binary was requested. The returned closer kills the plugin
// subprocess.
func buildScorer(p provider.Provider) (scorer.Scorer, func(), error) {
	if scorerPlugin == "" {
		return scorer.NewLLMScorer(p), func() {}, nil
	}

	client := goplugin.NewClient(&goplugin.ClientConfig{
		HandshakeConfig: plugin.HandshakeConfig,
		Plugins:         plugin.PluginMap,
		Cmd:             exec.Command(scorerPlugin), // #nosec G204
	})

	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, nil, fmt.Errorf("failed to start scorer plugin: %w", err)
	}
	raw, err := rpcClient.Dispense(plugin.ScorerPluginName)
	if err != nil {
		client.Kill()
		return nil, nil, fmt.Errorf("failed to dispense scorer plugin: %w", err)
	}
	sc, ok := raw.(scorer.Scorer)
	if !ok {
		client.Kill()
		return nil, nil, fmt.Errorf("plugin does not implement the scorer contract")
	}
	return sc, client.Kill, nil
}

func buildProvider(s store.Storage) (provider.Provider, error) {
	creds, err := credential.NewManager()
	if err != nil {
		return nil, err
	}

	loadKey := func(key string) string {
		stored, _ := s.GetConfig(key)
		plain, err := creds.Decrypt(stored)
		if err != nil {
			return ""
		}
		return plain
	}

	switch providerType {
	case "gemini":
		return provider.NewGeminiProvider(loadKey("gemini.api_key"), modelName)
	case "openai":
		baseURL, _ := s.GetConfig("openai.base_url")
		return provider.NewOpenAIProvider(loadKey("openai.api_key"), baseURL, modelName)
	case "ollama":
		return provider.NewOllamaProvider(modelName)
	default:
		return nil, fmt.Errorf("unknown provider: %s", providerType)
	}
}
