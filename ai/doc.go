// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package ai provides abstractions for the AI services used by journalrank.
//
// The ranking engine in package search is self-contained. This package covers
// the step after ranking: turning the top entries into a written answer.
//
//   - Summarizer: answers a query from ranked entries
//   - AIProvider: aggregates services for initialization and shutdown
//   - Config: host, model and sampling settings
//
// # Implementation Packages
//
//   - ai/openai: implementation using OpenAI-compatible APIs via langchaingo
//   - ai/mock: test doubles for unit testing without external dependencies
//
// Public constructors (openai.NewProvider) return interface types. Test
// constructors (mock.NewMockSummarizer) return concrete types so tests can
// inject behavior and inspect call counts.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithModel("qwen2.5:3b"))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	answer, err := provider.Summarizer().Summarize(ctx, "when did I go running?", results)
package ai
