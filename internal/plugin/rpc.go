package plugin

import (
	"context"
	"net/rpc"

	goplugin "github.com/hashicorp/go-plugin"

	"github.com/felixgeelhaar/apexmind/internal/scorer"
	"github.com/felixgeelhaar/apexmind/internal/trait"
)

// InferArgs crosses the process boundary, so scores travel as plain
// string-keyed maps rather than domain types.
type InferArgs struct {
	UserMessage string
	AgentReply  string
	Current     map[string]float64
}

// InferReply is the plugin's verdict.
type InferReply struct {
	Scores map[string]float64
	Notes  map[string]string
}

// ScorerPlugin is the go-plugin glue for serving or dispensing a
// scorer over net/rpc.
type ScorerPlugin struct {
	// Impl is set on the plugin side to the scorer being served.
	Impl scorer.Scorer
}

func (p *ScorerPlugin) Server(*goplugin.MuxBroker) (interface{}, error) {
	return &ScorerRPCServer{Impl: p.Impl}, nil
}

func (p *ScorerPlugin) Client(b *goplugin.MuxBroker, c *rpc.Client) (interface{}, error) {
	return &ScorerRPCClient{client: c}, nil
}

// ScorerRPCServer runs inside the plugin process and forwards calls to
// the real implementation.
type ScorerRPCServer struct {
	Impl scorer.Scorer
}

func (s *ScorerRPCServer) Infer(args InferArgs, reply *InferReply) error {
	current := trait.Observation{}
	for k, v := range args.Current {
		current[trait.Name(k)] = v
	}

	res, err := s.Impl.Infer(context.Background(), args.UserMessage, args.AgentReply, current)
	if err != nil {
		return err
	}

	reply.Scores = make(map[string]float64, len(res.Scores))
	for name, v := range res.Scores {
		reply.Scores[string(name)] = v
	}
	if len(res.Notes) > 0 {
		reply.Notes = make(map[string]string, len(res.Notes))
		for name, note := range res.Notes {
			reply.Notes[string(name)] = note
		}
	}
	return nil
}

func (s *ScorerRPCServer) Name(args struct{}, reply *string) error {
	*reply = s.Impl.Name()
	return nil
}

// ScorerRPCClient lives in the host and satisfies scorer.Scorer by
// calling into the plugin process.
type ScorerRPCClient struct {
	client *rpc.Client
}

func (c *ScorerRPCClient) Infer(ctx context.Context, userMessage, agentReply string, current trait.Observation) (*scorer.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	args := InferArgs{
		UserMessage: userMessage,
		AgentReply:  agentReply,
		Current:     make(map[string]float64, len(current)),
	}
	for name, v := range current {
		args.Current[string(name)] = v
	}

	var reply InferReply
	if err := c.client.Call("Plugin.Infer", args, &reply); err != nil {
		return nil, err
	}

	res := &scorer.Result{Scores: make(trait.Observation, len(reply.Scores))}
	for k, v := range reply.Scores {
		name := trait.Name(k)
		if name.Valid() {
			res.Scores[name] = trait.Clamp(v)
		}
	}
	if len(reply.Notes) > 0 {
		res.Notes = make(map[trait.Name]string, len(reply.Notes))
		for k, note := range reply.Notes {
			name := trait.Name(k)
			if name.Valid() {
				res.Notes[name] = note
			}
		}
	}
	return res, nil
}

func (c *ScorerRPCClient) Name() string {
	var name string
	if err := c.client.Call("Plugin.Name", struct{}{}, &name); err != nil {
		return "plugin"
	}
	return name
}

// Serve is called from a plugin binary's main to expose its scorer.
func Serve(impl scorer.Scorer) {
	goplugin.Serve(&goplugin.ServeConfig{
		HandshakeConfig: HandshakeConfig,
		Plugins: map[string]goplugin.Plugin{
			ScorerPluginName: &ScorerPlugin{Impl: impl},
		},
	})
}
