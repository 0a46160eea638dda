/*
Package types defines core data structures shared across extractcli.

# Overview

The types package provides shared type definitions for:
  - Wire payloads of the extraction API (extract, search, health)
  - The flattened extraction result consumed by the renderer
  - The persisted form snapshot
  - Local extraction history entries

Wire types carry the snake_case JSON tags of the server contract; everything
the UI touches goes through the flattened ExtractionResult so rendering never
depends on payload shape.
*/
package types
