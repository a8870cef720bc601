package notify

func SearchFailed() Notification {
	return Notification{Title: "Error finding recipes", Description: "Please try again", Variant: VariantDestructive}
}

func CatalogFailed() Notification {
	return Notification{Title: "Error loading ingredients", Description: "Please try refreshing the page", Variant: VariantDestructive}
}

func DetailsFailed() Notification {
	return Notification{Title: "Failed to generate recipe details", Description: "Using basic recipe information", Variant: VariantDestructive}
}

func InstructionsReady() Notification {
	return Notification{Title: "Instructions generated!", Description: "AI-powered cooking steps are ready."}
}

func InstructionsFailed() Notification {
	return Notification{Title: "Failed to generate instructions", Description: "Please try again", Variant: VariantDestructive}
}
