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


// Package search ranks a user's journal entries against a natural-language query.
//
// The Engine works on a corpus supplied per call and keeps no index between
// calls; every ranking rebuilds its statistics from scratch. It offers:
//   - SemanticSearch: TF-IDF vectors compared by cosine similarity
//   - KeywordSearch: raw query-term counts with a whole-phrase bonus
//   - BM25Search: Okapi BM25 with length normalization
//   - HybridSearch: semantic and lexical rankings run concurrently,
//     max-normalized and blended with a weight alpha
//
// Combine merges two rankings by first-seen identity, and RenderResults
// formats a ranking for display or as LLM prompt context.
//
// The Searcher type loads a user's corpus from a storage.EntryRepository and
// dispatches to an Engine according to a Mode.
package search
