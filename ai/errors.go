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


package ai

import "errors"

var (
	// ErrRemoteUnavailable indicates the remote service could not be reached
	// or answered with a server-side failure.
	ErrRemoteUnavailable = errors.New("remote service unavailable")

	// ErrTimeout indicates the remote call exceeded its deadline.
	ErrTimeout = errors.New("remote call timed out")

	// ErrAuth indicates missing or rejected credentials.
	ErrAuth = errors.New("authentication failed")

	// ErrUnsupportedFormat indicates an upload whose format or size the
	// converter does not accept.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrConversionFailed indicates the conversion model did not produce
	// a usable score document.
	ErrConversionFailed = errors.New("score conversion failed")
)
