// Copyright 2025 Clefworks
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


// Package openai provides the sheet conversion service using
// OpenAI-compatible APIs.
//
// This package implements the ai.ScoreConverter interface using the
// langchaingo library to communicate with OpenAI or OpenAI-compatible
// services (such as Ollama, LocalAI, or vLLM) running a multimodal model.
//
// # Usage
//
//	config := ai.NewConfig(
//	    ai.WithConverterHost("http://localhost:11434"),  // /v1 added automatically
//	    ai.WithConverterModel("qwen2.5vl:7b"),
//	)
//
//	converter, err := openai.NewConverter(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	doc, err := converter.Convert(ctx, "uploads/nocturne.png")
package openai
