package mcpserver

// ClassificationGuide describes the classification workflow for MCP
// consumers, in particular the feedback semantics.
const ClassificationGuide = `# Taxo Classification Guide

Taxo organizes work into **classifiers**. A classifier owns a set of
**categories** and an append-only **history** of classification records.

## Workflow

1. ` + "`list_classifiers`" + ` to find a classifier, or inspect one with
   ` + "`get_classifier`" + `.
2. ` + "`classify_text`" + ` assigns a text to one of the classifier's
   categories. The result carries a category id, a confidence level
   (low / medium / high), and a short explanation, and is appended to
   the history.
3. ` + "`submit_feedback`" + ` records a verdict on a history record.

## Feedback semantics

- ` + "`feedback: \"correct\"`" + ` confirms the assignment. The record's text is
  promoted into the assigned category's examples so future
  classifications see it. Promotion is idempotent; duplicate texts are
  not added twice.
- ` + "`feedback: \"incorrect\"`" + ` with a ` + "`correctedCategoryId`" + ` marks the
  assignment wrong and names the right category. The text is promoted
  into the corrected category's examples. The record keeps its original
  ` + "`categoryId`" + `; the correction is stored alongside it.
- ` + "`feedback: \"incorrect\"`" + ` without a correction just marks the record
  wrong.

## Categories

- ` + "`suggest_category`" + ` proposes a name and description for a set of
  example texts. Use it before ` + "`add_category`" + ` when the right category
  is unclear.
- ` + "`add_category`" + ` accepts optional seed examples. Unclassified history
  records whose text exactly matches a seed example are adopted into
  the new category.

## Identifiers

Classifier ids start with ` + "`clf-`" + `, category ids with ` + "`cat-`" + `, and
history record ids with ` + "`rec-`" + `. Always pass ids exactly as returned.
`
