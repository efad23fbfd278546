// Command quizreel generates quiz videos: it loads a question list, prepares
// narrative, image and audio assets for every question, renders one video per
// question through the Remotion runner, and optionally joins and publishes
// the result.
package main
