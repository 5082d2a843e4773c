package similarity

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/seedtech/candidate-matcher/internal/llm"
	"github.com/seedtech/candidate-matcher/internal/prompts"
)

// Kind partitions the similarity space. Scores cached under one kind are
// never served for another: "master" vs "maître" may rate differently as a
// degree domain than as a job title.
type Kind string

const (
	KindName      Kind = "name"
	KindHardSkill Kind = "hard_skills"
	KindSoftSkill Kind = "soft_skills"
	KindDegree    Kind = "degree_domain"
)

func (k Kind) promptKey() string {
	switch k {
	case KindName:
		return "job-title"
	case KindHardSkill:
		return "hard-skill"
	case KindSoftSkill:
		return "soft-skill"
	case KindDegree:
		return "degree"
	default:
		return "general"
	}
}

// CacheKey builds the undirected fast-tier key for a normalized, sorted pair.
func CacheKey(kind Kind, a, b string) string {
	return fmt.Sprintf("%s:%s:%s", kind, a, b)
}

// FastCache is the volatile tier. Lookups that miss or fail are transparent
// to callers; the resolver falls through to the next tier.
type FastCache interface {
	Get(ctx context.Context, key string) (float64, bool, error)
	Set(ctx context.Context, key string, score float64) error
}

// Store is the durable tier, keyed by kind and a normalized, sorted pair.
type Store interface {
	GetScore(ctx context.Context, kind Kind, text1, text2 string) (float64, bool, error)
	SaveScore(ctx context.Context, kind Kind, text1, text2 string, score float64) error
}

// Resolver answers "how similar are these two texts" through a tiered
// pipeline: exact match, static skill relations, fast cache, durable store,
// and finally the LLM oracle. Results from the oracle and the relation table
// are written through to both cache tiers. Resolution never fails; when the
// oracle is unreachable or returns garbage, the neutral score 0.5 is used so
// a single flaky call cannot sink or inflate a whole match.
type Resolver struct {
	store   Store
	fast    FastCache
	oracle  llm.Client
	limiter *rate.Limiter
	log     *zap.Logger
}

const neutralScore = 0.5

// NewResolver wires the tiers together. fast may be nil when no volatile
// cache is configured; limiter may be nil to disable oracle rate limiting.
func NewResolver(store Store, fast FastCache, oracle llm.Client, limiter *rate.Limiter, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{store: store, fast: fast, oracle: oracle, limiter: limiter, log: log}
}

// Resolve returns the similarity score in [0,1] for the given pair.
// Arguments are order-independent.
func (r *Resolver) Resolve(ctx context.Context, kind Kind, text1, text2 string) float64 {
	a, b := sortPair(Normalize(text1), Normalize(text2))
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	if kind == KindHardSkill {
		if score, ok := CheckSkillRelation(a, b); ok {
			r.writeThrough(ctx, kind, a, b, score)
			return score
		}
	}

	key := CacheKey(kind, a, b)
	if r.fast != nil {
		score, ok, err := r.fast.Get(ctx, key)
		if err != nil {
			r.log.Warn("fast cache lookup failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			return score
		}
	}

	if r.store != nil {
		score, ok, err := r.store.GetScore(ctx, kind, a, b)
		if err != nil {
			r.log.Warn("durable cache lookup failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			if r.fast != nil {
				if err := r.fast.Set(ctx, key, score); err != nil {
					r.log.Warn("fast cache backfill failed", zap.String("key", key), zap.Error(err))
				}
			}
			return score
		}
	}

	score := r.consultOracle(ctx, kind, text1, text2)
	r.writeThrough(ctx, kind, a, b, score)
	return score
}

func (r *Resolver) consultOracle(ctx context.Context, kind Kind, text1, text2 string) float64 {
	if r.oracle == nil {
		return neutralScore
	}
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			r.log.Warn("oracle rate limit wait aborted", zap.Error(err))
			return neutralScore
		}
	}

	template, err := prompts.Get("similarity.json", kind.promptKey())
	if err != nil {
		r.log.Error("similarity prompt missing", zap.String("kind", string(kind)), zap.Error(err))
		return neutralScore
	}
	prompt := prompts.Format(template, map[string]string{"Text1": text1, "Text2": text2})

	raw, err := r.oracle.Evaluate(ctx, prompt)
	if err != nil {
		r.log.Warn("oracle evaluation failed",
			zap.String("kind", string(kind)),
			zap.String("text1", text1),
			zap.String("text2", text2),
			zap.Error(err))
		return neutralScore
	}

	score, err := llm.ParseScore(raw)
	if err != nil {
		r.log.Warn("oracle returned no parseable score",
			zap.String("kind", string(kind)),
			zap.String("response", raw))
		return neutralScore
	}
	return score
}

// writeThrough persists a freshly resolved score in both tiers. Failures are
// logged and swallowed; a dead cache must not block scoring.
func (r *Resolver) writeThrough(ctx context.Context, kind Kind, a, b string, score float64) {
	if r.fast != nil {
		if err := r.fast.Set(ctx, CacheKey(kind, a, b), score); err != nil {
			r.log.Warn("fast cache write failed", zap.String("kind", string(kind)), zap.Error(err))
		}
	}
	if r.store != nil {
		if err := r.store.SaveScore(ctx, kind, a, b, score); err != nil {
			r.log.Warn("durable cache write failed", zap.String("kind", string(kind)), zap.Error(err))
		}
	}
}

// NameSimilarity compares two job or experience titles.
func (r *Resolver) NameSimilarity(ctx context.Context, a, b string) float64 {
	return r.Resolve(ctx, KindName, a, b)
}

// HardSkillSimilarity compares two technical skills.
func (r *Resolver) HardSkillSimilarity(ctx context.Context, a, b string) float64 {
	return r.Resolve(ctx, KindHardSkill, a, b)
}

// SoftSkillSimilarity compares two behavioural skills.
func (r *Resolver) SoftSkillSimilarity(ctx context.Context, a, b string) float64 {
	return r.Resolve(ctx, KindSoftSkill, a, b)
}

// DegreeSimilarity compares two fields of study.
func (r *Resolver) DegreeSimilarity(ctx context.Context, a, b string) float64 {
	return r.Resolve(ctx, KindDegree, a, b)
}
