package openai

const conversionResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "key": {
      "type": "string"
    },
    "tempo": {
      "type": "integer",
      "minimum": 0
    },
    "measures": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": {
            "type": "integer",
            "minimum": 1
          },
          "right_hand": {
            "type": "array",
            "items": {
              "type": "object",
              "properties": {
                "notes": {
                  "type": "array",
                  "items": {"type": "string"}
                },
                "duration": {
                  "type": "string"
                }
              },
              "required": ["notes", "duration"],
              "additionalProperties": false
            }
          },
          "left_hand": {
            "type": "array",
            "items": {
              "type": "object",
              "properties": {
                "notes": {
                  "type": "array",
                  "items": {"type": "string"}
                },
                "duration": {
                  "type": "string"
                }
              },
              "required": ["notes", "duration"],
              "additionalProperties": false
            }
          }
        },
        "required": ["id", "right_hand", "left_hand"],
        "additionalProperties": false
      }
    }
  },
  "required": ["key", "tempo", "measures"],
  "additionalProperties": false
}`

const conversionPrompt = `You are an optical music recognition engine. Transcribe the attached music
sheet into JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

` + conversionResponseSchema + `

Rules:
- "key" is the key signature in letter notation, e.g. "C", "G", "F#m", "Bb".
- "tempo" is the metronome marking in beats per minute; use 0 when none is printed.
- Measures are numbered from 1 in reading order.
- Notes use scientific pitch notation, e.g. "C4", "F#5", "Bb3". Use ["rest"] for rests.
- Durations are one of: "whole", "half", "quarter", "eighth", "sixteenth", optionally
  suffixed with "." for dotted values, e.g. "quarter.".
- "right_hand" holds the treble staff, "left_hand" the bass staff. A single-staff
  sheet puts everything in "right_hand" and leaves "left_hand" as [].
- Transcribe only what is printed. Do not invent measures or notes.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.`
