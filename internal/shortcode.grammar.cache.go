package internal

import (
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// GrammarCache memoizes compiled tag grammars by their name list, so
// repeated renders against an unchanged registry skip regexp compilation.
type GrammarCache struct {
	cache  *gocache.Cache
	config GrammarConfig
	logger *zap.Logger
}

// NewGrammarCache creates a cache whose entries expire after ttl. A
// non-positive ttl keeps entries until the process ends.
func NewGrammarCache(ttl time.Duration, config GrammarConfig, logger *zap.Logger) *GrammarCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	expiration := ttl
	cleanup := 2 * ttl
	if ttl <= 0 {
		expiration = gocache.NoExpiration
		cleanup = 0
	}
	return &GrammarCache{
		cache:  gocache.New(expiration, cleanup),
		config: config,
		logger: logger,
	}
}

// Get returns the grammar for names, compiling and storing it on a miss.
func (c *GrammarCache) Get(names []string) (*TagGrammar, error) {
	key := grammarCacheKey(names)

	if cached, found := c.cache.Get(key); found {
		if g, ok := cached.(*TagGrammar); ok {
			c.logger.Debug(LogMsgGrammarCacheHit, zap.Int(LogFieldCount, len(names)))
			return g, nil
		}
	}

	g, err := BuildTagGrammar(names, c.config)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, g)
	c.logger.Debug(LogMsgGrammarBuilt, zap.Strings(LogFieldNames, names))
	return g, nil
}

// Len returns the number of cached grammars, including expired ones not
// yet cleaned up.
func (c *GrammarCache) Len() int {
	return c.cache.ItemCount()
}

// Flush drops every cached grammar.
func (c *GrammarCache) Flush() {
	c.cache.Flush()
}

// grammarCacheKey length-prefixes each name so no name content can make two
// different lists share a key.
func grammarCacheKey(names []string) string {
	if len(names) == 0 {
		return GrammarCacheKeyEmpty
	}
	var sb strings.Builder
	for _, name := range names {
		sb.WriteString(strconv.Itoa(len(name)))
		sb.WriteString(GrammarCacheKeySep)
		sb.WriteString(name)
	}
	return sb.String()
}
