// Command cuesync aligns a YAML dialogue script against a video project
// document and inserts the image and text items the script requests.
package main
