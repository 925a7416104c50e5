// Package app provides the main application logic for installing Plastic SCM
// from published release archives. It initializes the necessary components,
// such as the download client, release fetcher, and template manager,
// and orchestrates the installation process.
package app
