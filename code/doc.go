/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package code defines the top-level error codes returned by the log plugin.
//
// A code is the machine-readable class of a failure, such as
// "invalid_parameter" or "internal". Codes are lowercase, underscore-separated
// and 3..64 characters long. Transports resolve them into gRPC and HTTP
// statuses through the mapper package.
//
// Empty codes ("") are NOT allowed on errors that leave the plugin.
package code
